// Package markdown converts CommonMark/GFM source into block trees.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/hpungsan/scribe/pkg/blocks"
	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/richtext"
)

// Options configures Convert.
type Options struct {
	// DefaultLanguage is used for code fences without an info string, and
	// for unsupported languages unless Strict is set. Empty means plain text.
	DefaultLanguage codelang.Language

	// Strict makes an unsupported fence language an UNKNOWN_LANGUAGE error.
	Strict bool
}

// aliases maps common fence names onto the API's language tags.
var aliases = map[string]codelang.Language{
	"js":         codelang.JavaScript,
	"jsx":        codelang.JavaScript,
	"ts":         codelang.TypeScript,
	"tsx":        codelang.TypeScript,
	"py":         codelang.Python,
	"rb":         codelang.Ruby,
	"rs":         codelang.Rust,
	"kt":         codelang.Kotlin,
	"golang":     codelang.Go,
	"sh":         codelang.Shell,
	"zsh":        codelang.Shell,
	"console":    codelang.Shell,
	"yml":        codelang.YAML,
	"md":         codelang.Markdown,
	"cpp":        codelang.CPP,
	"cc":         codelang.CPP,
	"cs":         codelang.CSharp,
	"csharp":     codelang.CSharp,
	"fs":         codelang.FSharp,
	"fsharp":     codelang.FSharp,
	"objc":       codelang.ObjectiveC,
	"tex":        codelang.LaTeX,
	"dockerfile": codelang.Docker,
	"make":       codelang.Makefile,
	"proto":      codelang.Protobuf,
	"ps1":        codelang.PowerShell,
	"text":       codelang.PlainText,
	"txt":        codelang.PlainText,
	"plaintext":  codelang.PlainText,
	"wasm":       codelang.WebAssembly,
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Convert parses src and returns the equivalent top-level blocks.
func Convert(src []byte, opts Options) ([]blocks.Block, error) {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = codelang.Default
	}
	if !codelang.IsValid(string(opts.DefaultLanguage)) {
		return nil, errors.NewUnknownLanguage(string(opts.DefaultLanguage))
	}

	c := &converter{src: src, opts: opts}
	doc := parser.Parse(text.NewReader(src))
	return c.blocks(doc)
}

// ResolveLanguage maps a fence info word onto a supported language.
// ok is false when name is neither a tag nor a known alias.
func ResolveLanguage(name string) (codelang.Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if codelang.IsValid(name) {
		return codelang.Language(name), true
	}
	if lang, ok := aliases[name]; ok {
		return lang, true
	}
	return "", false
}

type converter struct {
	src  []byte
	opts Options
}

// blocks converts the block-level children of parent.
func (c *converter) blocks(parent ast.Node) ([]blocks.Block, error) {
	var out []blocks.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		bs, err := c.block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func (c *converter) block(n ast.Node) ([]blocks.Block, error) {
	switch v := n.(type) {
	case *ast.Heading:
		rt := c.inlines(v)
		switch v.Level {
		case 1:
			return one(blocks.NewHeading1(rt)), nil
		case 2:
			return one(blocks.NewHeading2(rt)), nil
		default:
			return one(blocks.NewHeading3(rt)), nil
		}

	case *ast.Paragraph, *ast.TextBlock:
		return one(c.paragraph(n)), nil

	case *ast.List:
		return c.list(v)

	case *ast.FencedCodeBlock:
		lang := c.opts.DefaultLanguage
		if info := v.Language(c.src); len(info) > 0 {
			resolved, ok := ResolveLanguage(string(info))
			switch {
			case ok:
				lang = resolved
			case c.opts.Strict:
				return nil, errors.NewUnknownLanguage(string(info))
			}
		}
		return one(blocks.NewCode(richtext.Plain(c.lines(v)), blocks.WithLanguage(lang))), nil

	case *ast.CodeBlock:
		return one(blocks.NewCode(richtext.Plain(c.lines(v)), blocks.WithLanguage(c.opts.DefaultLanguage))), nil

	case *ast.HTMLBlock:
		raw := c.lines(v)
		if v.HasClosure() {
			raw += string(v.ClosureLine.Value(c.src))
		}
		return one(blocks.NewCode(richtext.Plain(strings.TrimRight(raw, "\n")), blocks.WithLanguage(codelang.HTML))), nil

	case *ast.Blockquote:
		return c.quote(v)

	case *ast.ThematicBreak:
		return one(blocks.NewDivider()), nil

	case *east.Table:
		return one(c.table(v)), nil
	}

	// Unknown containers: keep their content.
	return c.blocks(n)
}

func one(b blocks.Block) []blocks.Block { return []blocks.Block{b} }

// paragraph maps a paragraph to an equation, image or paragraph block.
func (c *converter) paragraph(n ast.Node) blocks.Block {
	raw := strings.TrimSpace(c.lines(n))
	if len(raw) > 4 && strings.HasPrefix(raw, "$$") && strings.HasSuffix(raw, "$$") {
		return blocks.NewEquation(strings.TrimSpace(raw[2 : len(raw)-2]))
	}

	if img, ok := onlyImage(n); ok {
		var opts []blocks.Option
		if alt := c.plain(img); alt != "" {
			opts = append(opts, blocks.WithCaption(richtext.Plain(alt)))
		}
		return blocks.NewImage(string(img.Destination), opts...)
	}

	return blocks.NewParagraph(c.inlines(n))
}

// onlyImage reports whether n holds a single image and nothing else.
func onlyImage(n ast.Node) (*ast.Image, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	img, ok := n.FirstChild().(*ast.Image)
	return img, ok
}

func (c *converter) list(l *ast.List) ([]blocks.Block, error) {
	var out []blocks.Block
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var rt []richtext.RichText
		var checkbox *east.TaskCheckBox

		first := item.FirstChild()
		rest := first
		if isTextual(first) {
			if cb, ok := first.FirstChild().(*east.TaskCheckBox); ok {
				checkbox = cb
			}
			rt = c.inlines(first)
			rest = first.NextSibling()
		}

		var children []blocks.Block
		for n := rest; n != nil; n = n.NextSibling() {
			bs, err := c.block(n)
			if err != nil {
				return nil, err
			}
			children = append(children, bs...)
		}

		var opts []blocks.Option
		if len(children) > 0 {
			opts = append(opts, blocks.WithChildren(children...))
		}

		switch {
		case checkbox != nil:
			out = append(out, blocks.NewToDo(checkbox.IsChecked, rt, opts...))
		case l.IsOrdered():
			out = append(out, blocks.NewNumberedListItem(rt, opts...))
		default:
			out = append(out, blocks.NewBulletedListItem(rt, opts...))
		}
	}
	return out, nil
}

func isTextual(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	}
	return false
}

// quote uses a leading paragraph as the quote text; remaining content
// becomes children.
func (c *converter) quote(q *ast.Blockquote) ([]blocks.Block, error) {
	var rt []richtext.RichText
	rest := q.FirstChild()
	if first := q.FirstChild(); first != nil && isTextual(first) {
		rt = c.inlines(first)
		rest = first.NextSibling()
	}

	var children []blocks.Block
	for n := rest; n != nil; n = n.NextSibling() {
		bs, err := c.block(n)
		if err != nil {
			return nil, err
		}
		children = append(children, bs...)
	}

	var opts []blocks.Option
	if len(children) > 0 {
		opts = append(opts, blocks.WithChildren(children...))
	}
	return one(blocks.NewQuote(rt, opts...)), nil
}

func (c *converter) table(t *east.Table) blocks.Block {
	var rows []blocks.TableRow
	width := 0

	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells [][]richtext.RichText
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, c.inlines(cell))
		}
		if _, ok := r.(*east.TableHeader); ok {
			width = len(cells)
		}
		rows = append(rows, blocks.NewTableRow(cells...))
	}

	// Every row must be exactly table_width cells wide.
	for i := range rows {
		cells := rows[i].Cells
		for len(cells) < width {
			cells = append(cells, []richtext.RichText{})
		}
		rows[i].Cells = cells[:width]
	}

	return blocks.NewTable(width, rows, blocks.WithColumnHeader(true))
}

// lines joins the raw source lines of a block node.
func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// style is the inline formatting in effect at a point of the tree.
type style struct {
	bold, italic, strike, code bool
	link                       string
}

type span struct {
	text  string
	style style
}

// inlines converts the inline children of n into rich text. Adjacent spans
// with identical styling are merged before chunking.
func (c *converter) inlines(n ast.Node) []richtext.RichText {
	var spans []span
	c.collect(n, style{}, &spans)

	var merged []span
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		if k := len(merged) - 1; k >= 0 && merged[k].style == s.style {
			merged[k].text += s.text
			continue
		}
		merged = append(merged, s)
	}

	runs := []richtext.RichText{}
	for _, s := range merged {
		runs = append(runs, richtext.Build(s.text, s.style.options())...)
	}
	return runs
}

func (s style) options() richtext.Options {
	opts := richtext.Options{LinkURL: s.link}
	if s.bold || s.italic || s.strike || s.code {
		opts.Annotations = &richtext.Annotations{
			Bold:          s.bold,
			Italic:        s.italic,
			Strikethrough: s.strike,
			Code:          s.code,
			Color:         richtext.ColorDefault,
		}
	}
	return opts
}

func (c *converter) collect(parent ast.Node, st style, out *[]span) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Text:
			*out = append(*out, span{inlineText(v.Segment.Value(c.src), st.code || v.IsRaw()), st})
			if v.HardLineBreak() {
				*out = append(*out, span{"\n", st})
			} else if v.SoftLineBreak() {
				*out = append(*out, span{" ", st})
			}
		case *ast.String:
			*out = append(*out, span{inlineText(v.Value, st.code || v.IsCode() || v.IsRaw()), st})
		case *ast.Emphasis:
			inner := st
			if v.Level >= 2 {
				inner.bold = true
			} else {
				inner.italic = true
			}
			c.collect(v, inner, out)
		case *east.Strikethrough:
			inner := st
			inner.strike = true
			c.collect(v, inner, out)
		case *ast.CodeSpan:
			inner := st
			inner.code = true
			c.collect(v, inner, out)
		case *ast.Link:
			inner := st
			inner.link = string(v.Destination)
			c.collect(v, inner, out)
		case *ast.AutoLink:
			inner := st
			inner.link = string(v.URL(c.src))
			*out = append(*out, span{string(v.Label(c.src)), inner})
		case *ast.Image:
			inner := st
			inner.link = string(v.Destination)
			c.collect(v, inner, out)
		case *ast.RawHTML:
			segs := v.Segments
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				*out = append(*out, span{string(seg.Value(c.src)), st})
			}
		case *east.TaskCheckBox:
			// Rendered as the to_do checked flag.
		default:
			c.collect(n, st, out)
		}
	}
}

// inlineText resolves backslash escapes and character references unless
// the bytes are code or raw.
func inlineText(b []byte, raw bool) string {
	if raw {
		return string(b)
	}
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

// plain returns the unstyled text of n's inline children.
func (c *converter) plain(n ast.Node) string {
	var spans []span
	c.collect(n, style{}, &spans)
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.text)
	}
	return sb.String()
}
