// Package chunk splits strings into bounded, order-preserving pieces.
package chunk

import (
	"fmt"
	"unicode/utf8"

	"github.com/hpungsan/scribe/pkg/errors"
)

// Split splits s into chunks of at most n runes. Every chunk but the last
// holds exactly n runes and the chunks concatenate back to s.
//
// The empty string yields an empty slice, not a slice holding "".
// A non-positive n is a CONFIGURATION error.
func Split(s string, n int) ([]string, error) {
	if n <= 0 {
		return nil, errors.NewConfiguration(fmt.Sprintf("chunk size must be positive, got %d", n))
	}

	chunks := make([]string, 0, utf8.RuneCountInString(s)/n+1)
	for len(s) > 0 {
		end, runes := 0, 0
		for end < len(s) && runes < n {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
			runes++
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks, nil
}

// Len returns the length of s as the chunker measures it.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
