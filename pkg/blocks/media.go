package blocks

import (
	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/richtext"
)

// Code is a code block.
type Code struct {
	RichText []richtext.RichText `json:"rich_text"`
	Caption  []richtext.RichText `json:"caption"`
	Language codelang.Language   `json:"language"`
}

// NewCode builds a code block. Honours WithLanguage (default "plain text")
// and WithCaption (default empty).
func NewCode(text []richtext.RichText, opts ...Option) Code {
	o := collect(opts)
	lang := o.language
	if lang == "" {
		lang = codelang.Default
	}
	return Code{
		RichText: orEmpty(text),
		Caption:  orEmpty(o.caption),
		Language: lang,
	}
}

// ExternalFile references a file hosted outside the workspace.
type ExternalFile struct {
	URL string `json:"url"`
}

// FileBody is the payload of image, video, file and pdf blocks. Only
// external files are supported.
type FileBody struct {
	Type     string              `json:"type"`
	Caption  []richtext.RichText `json:"caption"`
	External ExternalFile        `json:"external"`
}

func (f FileBody) fileBody() FileBody { return f }

func newFileBody(url string, opts []Option) FileBody {
	o := collect(opts)
	return FileBody{
		Type:     "external",
		Caption:  orEmpty(o.caption),
		External: ExternalFile{URL: url},
	}
}

// Image is an image block.
type Image struct{ FileBody }

// Video is a video block.
type Video struct{ FileBody }

// File is a file block.
type File struct{ FileBody }

// PDF is a pdf block.
type PDF struct{ FileBody }

// NewImage builds an image block for an external URL. Honours WithCaption.
func NewImage(url string, opts ...Option) Image { return Image{newFileBody(url, opts)} }

// NewVideo builds a video block for an external URL. Honours WithCaption.
func NewVideo(url string, opts ...Option) Video { return Video{newFileBody(url, opts)} }

// NewFile builds a file block for an external URL. Honours WithCaption.
func NewFile(url string, opts ...Option) File { return File{newFileBody(url, opts)} }

// NewPDF builds a pdf block for an external URL. Honours WithCaption.
func NewPDF(url string, opts ...Option) PDF { return PDF{newFileBody(url, opts)} }

// LinkBody is the payload of embed and bookmark blocks.
type LinkBody struct {
	URL     string              `json:"url"`
	Caption []richtext.RichText `json:"caption,omitempty"`
}

// Embed is an embed block.
type Embed struct{ LinkBody }

// Bookmark is a bookmark block.
type Bookmark struct{ LinkBody }

// NewEmbed builds an embed block. Honours WithCaption.
func NewEmbed(url string, opts ...Option) Embed {
	return Embed{LinkBody{URL: url, Caption: collect(opts).caption}}
}

// NewBookmark builds a bookmark block. Honours WithCaption.
func NewBookmark(url string, opts ...Option) Bookmark {
	return Bookmark{LinkBody{URL: url, Caption: collect(opts).caption}}
}

// Equation is a block-level equation.
type Equation struct {
	Expression string `json:"expression"`
}

// NewEquation builds an equation block.
func NewEquation(expression string) Equation {
	return Equation{Expression: expression}
}

func (Code) Type() Type     { return TypeCode }
func (Image) Type() Type    { return TypeImage }
func (Video) Type() Type    { return TypeVideo }
func (File) Type() Type     { return TypeFile }
func (PDF) Type() Type      { return TypePDF }
func (Embed) Type() Type    { return TypeEmbed }
func (Bookmark) Type() Type { return TypeBookmark }
func (Equation) Type() Type { return TypeEquation }

func (Code) block()     {}
func (Image) block()    {}
func (Video) block()    {}
func (File) block()     {}
func (PDF) block()      {}
func (Embed) block()    {}
func (Bookmark) block() {}
func (Equation) block() {}

// MarshalJSON implements json.Marshaler.
func (b Code) MarshalJSON() ([]byte, error) {
	type payload Code
	return envelope(TypeCode, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b Image) MarshalJSON() ([]byte, error) { return envelope(TypeImage, b.FileBody) }

// MarshalJSON implements json.Marshaler.
func (b Video) MarshalJSON() ([]byte, error) { return envelope(TypeVideo, b.FileBody) }

// MarshalJSON implements json.Marshaler.
func (b File) MarshalJSON() ([]byte, error) { return envelope(TypeFile, b.FileBody) }

// MarshalJSON implements json.Marshaler.
func (b PDF) MarshalJSON() ([]byte, error) { return envelope(TypePDF, b.FileBody) }

// MarshalJSON implements json.Marshaler.
func (b Embed) MarshalJSON() ([]byte, error) { return envelope(TypeEmbed, b.LinkBody) }

// MarshalJSON implements json.Marshaler.
func (b Bookmark) MarshalJSON() ([]byte, error) { return envelope(TypeBookmark, b.LinkBody) }

// MarshalJSON implements json.Marshaler.
func (b Equation) MarshalJSON() ([]byte, error) {
	type payload Equation
	return envelope(TypeEquation, payload(b))
}
