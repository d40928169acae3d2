package blocks

import "github.com/hpungsan/scribe/pkg/richtext"

// TextBody is the payload shared by blocks whose main content is rich text.
type TextBody struct {
	RichText []richtext.RichText `json:"rich_text"`
	Children []Block             `json:"children,omitempty"`
	Color    Color               `json:"color,omitempty"`
}

func (b TextBody) textBody() TextBody { return b }

func newTextBody(text []richtext.RichText, o options) TextBody {
	return TextBody{
		RichText: orEmpty(text),
		Children: o.children,
		Color:    o.color,
	}
}

// HeadingBody is the payload of the three heading kinds.
type HeadingBody struct {
	TextBody
	IsToggleable bool `json:"is_toggleable,omitempty"`
}

// Paragraph is a paragraph block.
type Paragraph struct{ TextBody }

// Heading1 is a top-level heading block.
type Heading1 struct{ HeadingBody }

// Heading2 is a second-level heading block.
type Heading2 struct{ HeadingBody }

// Heading3 is a third-level heading block.
type Heading3 struct{ HeadingBody }

// Quote is a quote block.
type Quote struct{ TextBody }

// BulletedListItem is a bulleted list item block.
type BulletedListItem struct{ TextBody }

// NumberedListItem is a numbered list item block.
type NumberedListItem struct{ TextBody }

// Toggle is a toggle block.
type Toggle struct{ TextBody }

// ToDo is a to-do block.
type ToDo struct {
	TextBody
	Checked bool `json:"checked"`
}

// Callout is a callout block.
type Callout struct {
	TextBody
	Icon *Icon `json:"icon,omitempty"`
}

// Template is a template button block.
type Template struct {
	RichText []richtext.RichText `json:"rich_text"`
	Children []Block             `json:"children,omitempty"`
}

// Icon is a callout icon: an emoji or an external image.
type Icon struct {
	Type     string        `json:"type"`
	Emoji    string        `json:"emoji,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

// EmojiIcon returns an emoji icon.
func EmojiIcon(emoji string) Icon {
	return Icon{Type: "emoji", Emoji: emoji}
}

// ExternalIcon returns an icon pointing at an external image.
func ExternalIcon(url string) Icon {
	return Icon{Type: "external", External: &ExternalFile{URL: url}}
}

// NewParagraph builds a paragraph. Honours WithChildren and WithColor.
func NewParagraph(text []richtext.RichText, opts ...Option) Paragraph {
	return Paragraph{newTextBody(text, collect(opts))}
}

func newHeadingBody(text []richtext.RichText, opts []Option) HeadingBody {
	o := collect(opts)
	return HeadingBody{TextBody: newTextBody(text, o), IsToggleable: o.toggleable}
}

// NewHeading1 builds a heading_1. Honours WithChildren, WithColor and WithToggleable.
func NewHeading1(text []richtext.RichText, opts ...Option) Heading1 {
	return Heading1{newHeadingBody(text, opts)}
}

// NewHeading2 builds a heading_2. Honours WithChildren, WithColor and WithToggleable.
func NewHeading2(text []richtext.RichText, opts ...Option) Heading2 {
	return Heading2{newHeadingBody(text, opts)}
}

// NewHeading3 builds a heading_3. Honours WithChildren, WithColor and WithToggleable.
func NewHeading3(text []richtext.RichText, opts ...Option) Heading3 {
	return Heading3{newHeadingBody(text, opts)}
}

// NewCallout builds a callout. Honours WithIcon, WithChildren and WithColor.
func NewCallout(text []richtext.RichText, opts ...Option) Callout {
	o := collect(opts)
	return Callout{TextBody: newTextBody(text, o), Icon: o.icon}
}

// NewQuote builds a quote. Honours WithChildren and WithColor.
func NewQuote(text []richtext.RichText, opts ...Option) Quote {
	return Quote{newTextBody(text, collect(opts))}
}

// NewBulletedListItem builds a bulleted list item. Honours WithChildren and WithColor.
func NewBulletedListItem(text []richtext.RichText, opts ...Option) BulletedListItem {
	return BulletedListItem{newTextBody(text, collect(opts))}
}

// NewNumberedListItem builds a numbered list item. Honours WithChildren and WithColor.
func NewNumberedListItem(text []richtext.RichText, opts ...Option) NumberedListItem {
	return NumberedListItem{newTextBody(text, collect(opts))}
}

// NewToDo builds a to-do. Honours WithChildren and WithColor.
func NewToDo(checked bool, text []richtext.RichText, opts ...Option) ToDo {
	return ToDo{TextBody: newTextBody(text, collect(opts)), Checked: checked}
}

// NewToggle builds a toggle. Honours WithChildren and WithColor.
func NewToggle(text []richtext.RichText, opts ...Option) Toggle {
	return Toggle{newTextBody(text, collect(opts))}
}

// NewTemplate builds a template block holding the given children.
func NewTemplate(text []richtext.RichText, children ...Block) Template {
	return Template{RichText: orEmpty(text), Children: children}
}

func (Paragraph) Type() Type        { return TypeParagraph }
func (Heading1) Type() Type         { return TypeHeading1 }
func (Heading2) Type() Type         { return TypeHeading2 }
func (Heading3) Type() Type         { return TypeHeading3 }
func (Quote) Type() Type            { return TypeQuote }
func (BulletedListItem) Type() Type { return TypeBulletedListItem }
func (NumberedListItem) Type() Type { return TypeNumberedListItem }
func (Toggle) Type() Type           { return TypeToggle }
func (ToDo) Type() Type             { return TypeToDo }
func (Callout) Type() Type          { return TypeCallout }
func (Template) Type() Type         { return TypeTemplate }

func (Paragraph) block()        {}
func (Heading1) block()         {}
func (Heading2) block()         {}
func (Heading3) block()         {}
func (Quote) block()            {}
func (BulletedListItem) block() {}
func (NumberedListItem) block() {}
func (Toggle) block()           {}
func (ToDo) block()             {}
func (Callout) block()          {}
func (Template) block()         {}

// MarshalJSON implements json.Marshaler.
func (b Paragraph) MarshalJSON() ([]byte, error) { return envelope(TypeParagraph, b.TextBody) }

// MarshalJSON implements json.Marshaler.
func (b Heading1) MarshalJSON() ([]byte, error) { return envelope(TypeHeading1, b.HeadingBody) }

// MarshalJSON implements json.Marshaler.
func (b Heading2) MarshalJSON() ([]byte, error) { return envelope(TypeHeading2, b.HeadingBody) }

// MarshalJSON implements json.Marshaler.
func (b Heading3) MarshalJSON() ([]byte, error) { return envelope(TypeHeading3, b.HeadingBody) }

// MarshalJSON implements json.Marshaler.
func (b Quote) MarshalJSON() ([]byte, error) { return envelope(TypeQuote, b.TextBody) }

// MarshalJSON implements json.Marshaler.
func (b BulletedListItem) MarshalJSON() ([]byte, error) {
	return envelope(TypeBulletedListItem, b.TextBody)
}

// MarshalJSON implements json.Marshaler.
func (b NumberedListItem) MarshalJSON() ([]byte, error) {
	return envelope(TypeNumberedListItem, b.TextBody)
}

// MarshalJSON implements json.Marshaler.
func (b Toggle) MarshalJSON() ([]byte, error) { return envelope(TypeToggle, b.TextBody) }

// MarshalJSON implements json.Marshaler.
func (b ToDo) MarshalJSON() ([]byte, error) {
	type payload ToDo
	return envelope(TypeToDo, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b Callout) MarshalJSON() ([]byte, error) {
	type payload Callout
	return envelope(TypeCallout, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b Template) MarshalJSON() ([]byte, error) {
	type payload Template
	return envelope(TypeTemplate, payload(b))
}
