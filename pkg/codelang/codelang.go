// Package codelang lists the languages accepted by code blocks.
package codelang

import "sort"

// Language is a code block language tag.
type Language string

const (
	ABAP         Language = "abap"
	Arduino      Language = "arduino"
	Bash         Language = "bash"
	Basic        Language = "basic"
	C            Language = "c"
	Clojure      Language = "clojure"
	CoffeeScript Language = "coffeescript"
	CPP          Language = "c++"
	CSharp       Language = "c#"
	CSS          Language = "css"
	Dart         Language = "dart"
	Diff         Language = "diff"
	Docker       Language = "docker"
	Elixir       Language = "elixir"
	Elm          Language = "elm"
	Erlang       Language = "erlang"
	Flow         Language = "flow"
	Fortran      Language = "fortran"
	FSharp       Language = "f#"
	Gherkin      Language = "gherkin"
	GLSL         Language = "glsl"
	Go           Language = "go"
	GraphQL      Language = "graphql"
	Groovy       Language = "groovy"
	Haskell      Language = "haskell"
	HTML         Language = "html"
	Java         Language = "java"
	JavaScript   Language = "javascript"
	JSON         Language = "json"
	Julia        Language = "julia"
	Kotlin       Language = "kotlin"
	LaTeX        Language = "latex"
	Less         Language = "less"
	Lisp         Language = "lisp"
	LiveScript   Language = "livescript"
	Lua          Language = "lua"
	Makefile     Language = "makefile"
	Markdown     Language = "markdown"
	Markup       Language = "markup"
	MATLAB       Language = "matlab"
	Mermaid      Language = "mermaid"
	Nix          Language = "nix"
	ObjectiveC   Language = "objective-c"
	OCaml        Language = "ocaml"
	Pascal       Language = "pascal"
	Perl         Language = "perl"
	PHP          Language = "php"
	PlainText    Language = "plain text"
	PowerShell   Language = "powershell"
	Prolog       Language = "prolog"
	Protobuf     Language = "protobuf"
	Python       Language = "python"
	R            Language = "r"
	Reason       Language = "reason"
	Ruby         Language = "ruby"
	Rust         Language = "rust"
	Sass         Language = "sass"
	Scala        Language = "scala"
	Scheme       Language = "scheme"
	SCSS         Language = "scss"
	Shell        Language = "shell"
	SQL          Language = "sql"
	Swift        Language = "swift"
	TypeScript   Language = "typescript"
	VBNet        Language = "vb.net"
	Verilog      Language = "verilog"
	VHDL         Language = "vhdl"
	VisualBasic  Language = "visual basic"
	WebAssembly  Language = "webassembly"
	XML          Language = "xml"
	YAML         Language = "yaml"
	JavaCFamily  Language = "java/c/c++/c#"
)

// Default is the language used when a code block does not name one.
const Default = PlainText

var known = map[Language]struct{}{
	ABAP: {}, Arduino: {}, Bash: {}, Basic: {}, C: {}, Clojure: {},
	CoffeeScript: {}, CPP: {}, CSharp: {}, CSS: {}, Dart: {}, Diff: {},
	Docker: {}, Elixir: {}, Elm: {}, Erlang: {}, Flow: {}, Fortran: {},
	FSharp: {}, Gherkin: {}, GLSL: {}, Go: {}, GraphQL: {}, Groovy: {},
	Haskell: {}, HTML: {}, Java: {}, JavaScript: {}, JSON: {}, Julia: {},
	Kotlin: {}, LaTeX: {}, Less: {}, Lisp: {}, LiveScript: {}, Lua: {},
	Makefile: {}, Markdown: {}, Markup: {}, MATLAB: {}, Mermaid: {}, Nix: {},
	ObjectiveC: {}, OCaml: {}, Pascal: {}, Perl: {}, PHP: {}, PlainText: {},
	PowerShell: {}, Prolog: {}, Protobuf: {}, Python: {}, R: {}, Reason: {},
	Ruby: {}, Rust: {}, Sass: {}, Scala: {}, Scheme: {}, SCSS: {},
	Shell: {}, SQL: {}, Swift: {}, TypeScript: {}, VBNet: {}, Verilog: {},
	VHDL: {}, VisualBasic: {}, WebAssembly: {}, XML: {}, YAML: {},
	JavaCFamily: {},
}

// IsValid reports whether s is a supported language tag.
// The match is exact: no case folding, no trimming.
func IsValid(s string) bool {
	_, ok := known[Language(s)]
	return ok
}

// All returns every supported language, sorted.
func All() []Language {
	out := make([]Language, 0, len(known))
	for l := range known {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
