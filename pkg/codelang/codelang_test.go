package codelang

import (
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"c++", true},
		{"C++", false},
		{"c#", true},
		{"f#", true},
		{"java/c/c++/c#", true},
		{"plain text", true},
		{"go", true},
		{"Go", false},
		{" go", false},
		{"go ", false},
		{"plaintext", false},
		{"", false},
		{"brainfuck", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 72 {
		t.Errorf("len(All()) = %d, want 72", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("All() not sorted at %d: %q >= %q", i, all[i-1], all[i])
		}
	}
	for _, l := range all {
		if !IsValid(string(l)) {
			t.Errorf("All() returned %q which IsValid rejects", l)
		}
	}
}

func TestDefault(t *testing.T) {
	if Default != "plain text" {
		t.Errorf("Default = %q, want %q", Default, "plain text")
	}
}
