// Package blocks builds the block objects sent to the document API.
//
// Every writable kind is its own struct implementing Block. A block marshals
// as {"type": "<kind>", "<kind>": {...}}, so the discriminant and the payload
// key are bound together by the Go type rather than by convention.
//
// ChildPage, ChildDatabase and LinkPreview implement ReadOnlyBlock instead.
// The API only returns those kinds; it rejects them in write requests, so
// they cannot be placed in a children list.
package blocks

import (
	"bytes"
	"encoding/json"

	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/richtext"
)

// Type is a block kind discriminant.
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeCallout          Type = "callout"
	TypeQuote            Type = "quote"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeToggle           Type = "toggle"
	TypeCode             Type = "code"
	TypeChildPage        Type = "child_page"
	TypeChildDatabase    Type = "child_database"
	TypeEmbed            Type = "embed"
	TypeImage            Type = "image"
	TypeVideo            Type = "video"
	TypeFile             Type = "file"
	TypePDF              Type = "pdf"
	TypeBookmark         Type = "bookmark"
	TypeEquation         Type = "equation"
	TypeDivider          Type = "divider"
	TypeTableOfContents  Type = "table_of_contents"
	TypeBreadcrumb       Type = "breadcrumb"
	TypeColumnList       Type = "column_list"
	TypeColumn           Type = "column"
	TypeLinkPreview      Type = "link_preview"
	TypeTemplate         Type = "template"
	TypeLinkToPage       Type = "link_to_page"
	TypeSyncedBlock      Type = "synced_block"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
)

// Color is the block-level color, shared with rich-text annotations.
type Color = richtext.Color

// Block is a block that may be sent in a write request.
type Block interface {
	Type() Type
	json.Marshaler
	block()
}

// ReadOnlyBlock is a block shape the API returns but does not accept.
type ReadOnlyBlock interface {
	Type() Type
	json.Marshaler
	readOnly()
}

// envelope wraps a payload as {"type":t,"t":payload}.
func envelope(t Type, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + 2*len(t) + 16)
	buf.WriteString(`{"type":"`)
	buf.WriteString(string(t))
	buf.WriteString(`","`)
	buf.WriteString(string(t))
	buf.WriteString(`":`)
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Option sets an optional field on a block. Builders ignore options that do
// not apply to their kind; each builder documents the options it honours.
type Option func(*options)

type options struct {
	children     []Block
	color        Color
	caption      []richtext.RichText
	icon         *Icon
	language     codelang.Language
	toggleable   bool
	rowHeader    *bool
	columnHeader *bool
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithChildren nests blocks under the built block.
func WithChildren(children ...Block) Option {
	return func(o *options) { o.children = children }
}

// WithColor sets the block color.
func WithColor(c Color) Option {
	return func(o *options) { o.color = c }
}

// WithCaption sets the caption of a code, media, embed or bookmark block.
func WithCaption(caption []richtext.RichText) Option {
	return func(o *options) { o.caption = caption }
}

// WithIcon sets the icon of a callout.
func WithIcon(icon Icon) Option {
	return func(o *options) { o.icon = &icon }
}

// WithLanguage sets the language of a code block. The value is not checked
// against codelang; call codelang.IsValid first if that matters.
func WithLanguage(lang codelang.Language) Option {
	return func(o *options) { o.language = lang }
}

// WithToggleable makes a heading collapsible.
func WithToggleable() Option {
	return func(o *options) { o.toggleable = true }
}

// WithRowHeader sets has_row_header on a table.
func WithRowHeader(v bool) Option {
	return func(o *options) { o.rowHeader = &v }
}

// WithColumnHeader sets has_column_header on a table.
func WithColumnHeader(v bool) Option {
	return func(o *options) { o.columnHeader = &v }
}

// orEmpty keeps required arrays from marshaling as null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
