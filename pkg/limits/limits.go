// Package limits holds the request limits enforced by the document API.
// See https://developers.notion.com/reference/request-limits.
package limits

import "sort"

// Size limits for a single request.
const (
	// PayloadBlocks is the maximum number of blocks, at any depth, in one request.
	PayloadBlocks = 1000

	// BlockArrays is the maximum number of elements in any children array.
	BlockArrays = 100

	// RichTextArrays is the maximum number of runs in any rich-text array.
	RichTextArrays = 100
)

// Rich-text field limits.
const (
	RichTextContent            = 2000
	RichTextLinkURL            = 1000
	RichTextEquationExpression = 1000
)

// Property value limits.
const (
	URL         = 1000
	Email       = 200
	Phone       = 200
	MultiSelect = 100
	Relation    = 100
	People      = 100
)

var table = map[string]int{
	"payload_blocks":                PayloadBlocks,
	"block_arrays":                  BlockArrays,
	"rich_text_arrays":              RichTextArrays,
	"rich_text.text_content":        RichTextContent,
	"rich_text.link_url":            RichTextLinkURL,
	"rich_text.equation_expression": RichTextEquationExpression,
	"url":                           URL,
	"email":                         Email,
	"phone":                         Phone,
	"multi_select":                  MultiSelect,
	"relation":                      Relation,
	"people":                        People,
}

// Lookup returns the limit registered under name.
func Lookup(name string) (int, bool) {
	v, ok := table[name]
	return v, ok
}

// Names returns every limit name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the full limits table.
func All() map[string]int {
	out := make(map[string]int, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
