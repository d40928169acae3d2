// Package richtext builds rich-text runs: styled spans of text or inline
// equations that make up the text content of a block.
package richtext

import (
	"strings"

	"github.com/hpungsan/scribe/pkg/chunk"
	"github.com/hpungsan/scribe/pkg/limits"
)

// Type discriminates the shape of a RichText run.
type Type string

const (
	TypeText     Type = "text"
	TypeEquation Type = "equation"
)

// Color is a text or background color accepted by the API.
type Color string

const (
	ColorDefault          Color = "default"
	ColorGray             Color = "gray"
	ColorBrown            Color = "brown"
	ColorOrange           Color = "orange"
	ColorYellow           Color = "yellow"
	ColorGreen            Color = "green"
	ColorBlue             Color = "blue"
	ColorPurple           Color = "purple"
	ColorPink             Color = "pink"
	ColorRed              Color = "red"
	ColorGrayBackground   Color = "gray_background"
	ColorBrownBackground  Color = "brown_background"
	ColorOrangeBackground Color = "orange_background"
	ColorYellowBackground Color = "yellow_background"
	ColorGreenBackground  Color = "green_background"
	ColorBlueBackground   Color = "blue_background"
	ColorPurpleBackground Color = "purple_background"
	ColorPinkBackground   Color = "pink_background"
	ColorRedBackground    Color = "red_background"
)

var colors = map[Color]bool{
	ColorDefault:          true,
	ColorGray:             true,
	ColorBrown:            true,
	ColorOrange:           true,
	ColorYellow:           true,
	ColorGreen:            true,
	ColorBlue:             true,
	ColorPurple:           true,
	ColorPink:             true,
	ColorRed:              true,
	ColorGrayBackground:   true,
	ColorBrownBackground:  true,
	ColorOrangeBackground: true,
	ColorYellowBackground: true,
	ColorGreenBackground:  true,
	ColorBlueBackground:   true,
	ColorPurpleBackground: true,
	ColorPinkBackground:   true,
	ColorRedBackground:    true,
}

// Valid reports whether c is one of the API's colors.
func (c Color) Valid() bool { return colors[c] }

// Annotations is the display styling applied to a run.
type Annotations struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Code          bool  `json:"code"`
	Color         Color `json:"color,omitempty"`
}

// Link is a hyperlink attached to a text run.
type Link struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// Text is the payload of a text run.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// EquationBody is the payload of an equation run.
type EquationBody struct {
	Expression string `json:"expression"`
}

// RichText is one run. Exactly one of Text or Equation is set, matching Type.
// Use Build (or Plain/Equation) rather than filling the struct by hand.
type RichText struct {
	Type        Type          `json:"type"`
	Annotations *Annotations  `json:"annotations,omitempty"`
	Text        *Text         `json:"text,omitempty"`
	Equation    *EquationBody `json:"equation,omitempty"`
}

// Mode selects which run shape Build produces.
type Mode string

const (
	ModeText     Mode = "text"
	ModeEquation Mode = "equation"
)

// Options configures Build.
type Options struct {
	// Mode is ModeText (the default when empty) or ModeEquation.
	Mode Mode

	// Annotations, when set, is attached to every produced run.
	Annotations *Annotations

	// LinkURL, when set, links every produced text run. Ignored for equations.
	LinkURL string
}

// Build turns content into one or more runs, each within the per-kind length
// limit (2000 for text, 1000 for equations). Concatenating the runs' content
// gives back content exactly.
//
// Empty content yields a single run with empty content, so callers always
// receive at least one run.
func Build(content string, opts Options) []RichText {
	mode := opts.Mode
	if mode == "" {
		mode = ModeText
	}

	limit := limits.RichTextContent
	if mode == ModeEquation {
		limit = limits.RichTextEquationExpression
	}

	// Limits are positive constants so Split cannot fail here.
	parts, _ := chunk.Split(content, limit)
	if len(parts) == 0 {
		parts = []string{""}
	}

	runs := make([]RichText, len(parts))
	for i, part := range parts {
		runs[i] = newRun(mode, part, opts)
	}
	return runs
}

func newRun(mode Mode, part string, opts Options) RichText {
	var ann *Annotations
	if opts.Annotations != nil {
		a := *opts.Annotations
		ann = &a
	}

	if mode == ModeEquation {
		return RichText{
			Type:        TypeEquation,
			Annotations: ann,
			Equation:    &EquationBody{Expression: part},
		}
	}

	t := &Text{Content: part}
	if opts.LinkURL != "" {
		t.Link = &Link{Type: "url", URL: opts.LinkURL}
	}
	return RichText{
		Type:        TypeText,
		Annotations: ann,
		Text:        t,
	}
}

// Plain builds unstyled text runs.
func Plain(content string) []RichText {
	return Build(content, Options{})
}

// Equation builds inline equation runs.
func Equation(expression string) []RichText {
	return Build(expression, Options{Mode: ModeEquation})
}

// Concat joins run sequences in order.
func Concat(groups ...[]RichText) []RichText {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]RichText, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Content returns the text or expression carried by r.
func (r RichText) Content() string {
	switch {
	case r.Text != nil:
		return r.Text.Content
	case r.Equation != nil:
		return r.Equation.Expression
	}
	return ""
}

// PlainText concatenates the content of every run.
func PlainText(runs []RichText) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Content())
	}
	return sb.String()
}
