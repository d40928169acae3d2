package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/scribe/pkg/blocks"
	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/richtext"
)

func convert(t *testing.T, src string) []blocks.Block {
	t.Helper()
	out, err := Convert([]byte(src), Options{})
	require.NoError(t, err)
	return out
}

func types(bs []blocks.Block) []blocks.Type {
	out := make([]blocks.Type, len(bs))
	for i, b := range bs {
		out[i] = b.Type()
	}
	return out
}

func TestConvert_BlockKinds(t *testing.T) {
	src := strings.Join([]string{
		"# One",
		"## Two",
		"### Three",
		"#### Four",
		"",
		"Setext",
		"======",
		"",
		"Just a paragraph.",
		"",
		"---",
		"",
		"> quoted",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
		"",
		"$$",
		"E = mc^2",
		"$$",
		"",
		"![diagram](https://example.com/d.png)",
	}, "\n")

	got := convert(t, src)
	assert.Equal(t, []blocks.Type{
		blocks.TypeHeading1,
		blocks.TypeHeading2,
		blocks.TypeHeading3,
		blocks.TypeHeading3,
		blocks.TypeHeading1,
		blocks.TypeParagraph,
		blocks.TypeDivider,
		blocks.TypeQuote,
		blocks.TypeCode,
		blocks.TypeEquation,
		blocks.TypeImage,
	}, types(got))

	eq := got[9].(blocks.Equation)
	assert.Equal(t, "E = mc^2", eq.Expression)

	img := got[10].(blocks.Image)
	assert.Equal(t, "https://example.com/d.png", img.External.URL)
	assert.Equal(t, "diagram", richtext.PlainText(img.Caption))
}

func TestConvert_Empty(t *testing.T) {
	got := convert(t, "")
	assert.Empty(t, got)
}

func TestConvert_Lists(t *testing.T) {
	src := strings.Join([]string{
		"- alpha",
		"  - nested",
		"- beta",
		"",
		"1. first",
		"2. second",
		"",
		"- [ ] open",
		"- [x] done",
	}, "\n")

	got := convert(t, src)
	assert.Equal(t, []blocks.Type{
		blocks.TypeBulletedListItem,
		blocks.TypeBulletedListItem,
		blocks.TypeNumberedListItem,
		blocks.TypeNumberedListItem,
		blocks.TypeToDo,
		blocks.TypeToDo,
	}, types(got))

	alpha := got[0].(blocks.BulletedListItem)
	assert.Equal(t, "alpha", richtext.PlainText(alpha.RichText))
	require.Len(t, alpha.Children, 1)
	assert.Equal(t, blocks.TypeBulletedListItem, alpha.Children[0].Type())

	assert.Empty(t, got[1].(blocks.BulletedListItem).Children)

	open := got[4].(blocks.ToDo)
	done := got[5].(blocks.ToDo)
	assert.False(t, open.Checked)
	assert.True(t, done.Checked)
	assert.Equal(t, "done", strings.TrimSpace(richtext.PlainText(done.RichText)))
}

func TestConvert_Inline(t *testing.T) {
	got := convert(t, "plain **bold** *italic* ~~gone~~ `code` [link](https://x.io) <https://auto.io>")
	require.Len(t, got, 1)

	runs := got[0].(blocks.Paragraph).RichText
	type run struct {
		text   string
		bold   bool
		italic bool
		strike bool
		code   bool
		link   string
	}
	var flat []run
	for _, r := range runs {
		fr := run{text: r.Text.Content}
		if r.Annotations != nil {
			fr.bold = r.Annotations.Bold
			fr.italic = r.Annotations.Italic
			fr.strike = r.Annotations.Strikethrough
			fr.code = r.Annotations.Code
		}
		if r.Text.Link != nil {
			fr.link = r.Text.Link.URL
		}
		flat = append(flat, fr)
	}

	assert.Equal(t, []run{
		{text: "plain "},
		{text: "bold", bold: true},
		{text: " "},
		{text: "italic", italic: true},
		{text: " "},
		{text: "gone", strike: true},
		{text: " "},
		{text: "code", code: true},
		{text: " "},
		{text: "link", link: "https://x.io"},
		{text: " "},
		{text: "https://auto.io", link: "https://auto.io"},
	}, flat)
}

func TestConvert_EscapesAndEntities(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"escaped list marker", `1\. not a list \*literal\*`, "1. not a list *literal*"},
		{"escaped hash in heading", `# Title \#1`, "Title #1"},
		{"named entities", "Fish &amp; chips &copy; 2024", "Fish & chips © 2024"},
		{"numeric references", "&#35;1 &#x41;", "#1 A"},
		{"code span stays raw", "`a \\* &amp;`", `a \* &amp;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, tt.src)
			require.Len(t, got, 1)
			rts := blocks.RichTexts(got[0])
			require.NotEmpty(t, rts)
			assert.Equal(t, tt.want, richtext.PlainText(rts[0]))
		})
	}
}

func TestConvert_LineBreaks(t *testing.T) {
	got := convert(t, "soft\nbreak  \nhard")
	require.Len(t, got, 1)

	text := richtext.PlainText(got[0].(blocks.Paragraph).RichText)
	assert.True(t, strings.HasPrefix(text, "soft break"), text)
	assert.True(t, strings.HasSuffix(text, "\nhard"), text)
}

func TestConvert_LongParagraphIsChunked(t *testing.T) {
	got := convert(t, strings.Repeat("a", 4500))
	require.Len(t, got, 1)

	runs := got[0].(blocks.Paragraph).RichText
	require.Len(t, runs, 3)
	assert.Len(t, runs[0].Text.Content, 2000)
	assert.Len(t, runs[1].Text.Content, 2000)
	assert.Len(t, runs[2].Text.Content, 500)
}

func TestConvert_CodeLanguages(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want codelang.Language
	}{
		{"exact tag", "```rust\nfn main() {}\n```", Options{}, codelang.Rust},
		{"alias", "```ts\nlet x = 1\n```", Options{}, codelang.TypeScript},
		{"case folded", "```Python\npass\n```", Options{}, codelang.Python},
		{"no info", "```\nx\n```", Options{}, codelang.PlainText},
		{"no info custom default", "```\nx\n```", Options{DefaultLanguage: codelang.Go}, codelang.Go},
		{"unknown falls back", "```brainfuck\n+\n```", Options{DefaultLanguage: codelang.Shell}, codelang.Shell},
		{"indented", "    indented", Options{}, codelang.PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert([]byte(tt.src), tt.opts)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].(blocks.Code).Language)
		})
	}
}

func TestConvert_CodeContent(t *testing.T) {
	got := convert(t, "```go\nline1\nline2\n```")
	code := got[0].(blocks.Code)
	assert.Equal(t, "line1\nline2", richtext.PlainText(code.RichText))
}

func TestConvert_StrictUnknownLanguage(t *testing.T) {
	_, err := Convert([]byte("```brainfuck\n+\n```"), Options{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownLanguage))
}

func TestConvert_InvalidDefaultLanguage(t *testing.T) {
	_, err := Convert([]byte("x"), Options{DefaultLanguage: "klingon"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownLanguage))
}

func TestConvert_QuoteWithChildren(t *testing.T) {
	got := convert(t, "> lead\n>\n> - item")
	require.Len(t, got, 1)

	q := got[0].(blocks.Quote)
	assert.Equal(t, "lead", richtext.PlainText(q.RichText))
	require.Len(t, q.Children, 1)
	assert.Equal(t, blocks.TypeBulletedListItem, q.Children[0].Type())
}

func TestConvert_Table(t *testing.T) {
	src := strings.Join([]string{
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
		"| 3 |",
	}, "\n")

	got := convert(t, src)
	require.Len(t, got, 1)

	table := got[0].(blocks.Table)
	assert.Equal(t, 2, table.TableWidth)
	require.NotNil(t, table.HasColumnHeader)
	assert.True(t, *table.HasColumnHeader)
	assert.Nil(t, table.HasRowHeader)
	require.Len(t, table.Children, 3)
	for _, row := range table.Children {
		assert.Len(t, row.Cells, 2)
	}
	assert.Equal(t, "a", richtext.PlainText(table.Children[0].Cells[0]))
	assert.Equal(t, "3", richtext.PlainText(table.Children[2].Cells[0]))
}

func TestConvert_JSONShape(t *testing.T) {
	got := convert(t, "# Title\n\nBody")

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"heading_1","heading_1":{"rich_text":[{"type":"text","text":{"content":"Title"}}]}},
		{"type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"Body"}}]}}
	]`, string(data))
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		in     string
		want   codelang.Language
		wantOK bool
	}{
		{"go", codelang.Go, true},
		{"golang", codelang.Go, true},
		{" C++ ", codelang.CPP, true},
		{"plain text", codelang.PlainText, true},
		{"yml", codelang.YAML, true},
		{"nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ResolveLanguage(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
