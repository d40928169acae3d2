package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/richtext"
)

const sampleURL = "https://example.com"

func sampleRichText() []richtext.RichText {
	return richtext.Build("abc", richtext.Options{
		Annotations: &richtext.Annotations{
			Bold:          true,
			Italic:        true,
			Strikethrough: true,
			Underline:     true,
			Code:          true,
			Color:         richtext.ColorBrownBackground,
		},
		LinkURL: sampleURL,
	})
}

func sampleChildren() []Block {
	return []Block{
		NewParagraph(sampleRichText(), WithColor(richtext.ColorBlue)),
	}
}

// decode marshals v and decodes it back into a generic map.
func decode(t *testing.T, v json.Marshaler) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// payload returns the kind-keyed payload of a marshaled block.
func payload(t *testing.T, v json.Marshaler) map[string]any {
	t.Helper()
	m := decode(t, v)
	typ, ok := m["type"].(string)
	require.True(t, ok, "missing type discriminant")
	p, ok := m[typ].(map[string]any)
	require.True(t, ok, "payload key %q missing", typ)
	return p
}

// jsonOf marshals v into a generic value for comparison with payload fields.
func jsonOf(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestBlockKinds(t *testing.T) {
	tests := []struct {
		want  Type
		block json.Marshaler
	}{
		{TypeParagraph, NewParagraph(nil)},
		{TypeHeading1, NewHeading1(nil)},
		{TypeHeading2, NewHeading2(nil)},
		{TypeHeading3, NewHeading3(nil)},
		{TypeCallout, NewCallout(nil)},
		{TypeQuote, NewQuote(nil)},
		{TypeBulletedListItem, NewBulletedListItem(nil)},
		{TypeNumberedListItem, NewNumberedListItem(nil)},
		{TypeToDo, NewToDo(false, nil)},
		{TypeToggle, NewToggle(nil)},
		{TypeCode, NewCode(nil)},
		{TypeChildPage, NewChildPage("abc")},
		{TypeChildDatabase, NewChildDatabase("abc")},
		{TypeEmbed, NewEmbed("url")},
		{TypeImage, NewImage("url")},
		{TypeVideo, NewVideo("url")},
		{TypeFile, NewFile("url")},
		{TypePDF, NewPDF("url")},
		{TypeBookmark, NewBookmark("url")},
		{TypeEquation, NewEquation("")},
		{TypeDivider, NewDivider()},
		{TypeTableOfContents, NewTableOfContents()},
		{TypeBreadcrumb, NewBreadcrumb()},
		{TypeColumnList, NewColumnList()},
		{TypeColumn, NewColumn()},
		{TypeLinkPreview, NewLinkPreview("")},
		{TypeTemplate, NewTemplate(nil)},
		{TypeLinkToPage, NewLinkToPage(PageID, "")},
		{TypeSyncedBlock, NewReferenceSyncedBlock("")},
		{TypeTable, NewTable(1, nil)},
		{TypeTableRow, NewTableRow()},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			m := decode(t, tt.block)
			assert.Equal(t, string(tt.want), m["type"])
			assert.Contains(t, m, string(tt.want))
			assert.Len(t, m, 2, "only type and payload keys expected")

			if typed, ok := tt.block.(interface{ Type() Type }); ok {
				assert.Equal(t, tt.want, typed.Type())
			}
		})
	}
}

func TestRichTextSupport(t *testing.T) {
	rt := sampleRichText()
	tests := []struct {
		name  string
		block json.Marshaler
		field string
	}{
		{"paragraph", NewParagraph(rt), "rich_text"},
		{"heading_1", NewHeading1(rt), "rich_text"},
		{"heading_2", NewHeading2(rt), "rich_text"},
		{"heading_3", NewHeading3(rt), "rich_text"},
		{"callout", NewCallout(rt), "rich_text"},
		{"quote", NewQuote(rt), "rich_text"},
		{"bulleted_list_item", NewBulletedListItem(rt), "rich_text"},
		{"numbered_list_item", NewNumberedListItem(rt), "rich_text"},
		{"to_do", NewToDo(false, rt), "rich_text"},
		{"toggle", NewToggle(rt), "rich_text"},
		{"code", NewCode(rt), "rich_text"},
		{"code caption", NewCode(nil, WithCaption(rt)), "caption"},
		{"embed caption", NewEmbed("", WithCaption(rt)), "caption"},
		{"image caption", NewImage("", WithCaption(rt)), "caption"},
		{"video caption", NewVideo("", WithCaption(rt)), "caption"},
		{"file caption", NewFile("", WithCaption(rt)), "caption"},
		{"pdf caption", NewPDF("", WithCaption(rt)), "caption"},
		{"bookmark caption", NewBookmark("", WithCaption(rt)), "caption"},
		{"template", NewTemplate(rt), "rich_text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := payload(t, tt.block)
			assert.Equal(t, jsonOf(t, rt), p[tt.field])
		})
	}
}

func TestChildrenSupport(t *testing.T) {
	children := sampleChildren()
	tests := []struct {
		name  string
		block json.Marshaler
	}{
		{"paragraph", NewParagraph(nil, WithChildren(children...))},
		{"heading_1", NewHeading1(nil, WithChildren(children...))},
		{"heading_2", NewHeading2(nil, WithChildren(children...))},
		{"heading_3", NewHeading3(nil, WithChildren(children...))},
		{"callout", NewCallout(nil, WithChildren(children...))},
		{"quote", NewQuote(nil, WithChildren(children...))},
		{"bulleted_list_item", NewBulletedListItem(nil, WithChildren(children...))},
		{"numbered_list_item", NewNumberedListItem(nil, WithChildren(children...))},
		{"to_do", NewToDo(false, nil, WithChildren(children...))},
		{"toggle", NewToggle(nil, WithChildren(children...))},
		{"column", NewColumn(children...)},
		{"template", NewTemplate(nil, children...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := payload(t, tt.block)
			assert.Equal(t, jsonOf(t, children), p["children"])
		})
	}
}

func TestColorSupport(t *testing.T) {
	builders := map[string]func(Color) json.Marshaler{
		"paragraph":          func(c Color) json.Marshaler { return NewParagraph(nil, WithColor(c)) },
		"heading_1":          func(c Color) json.Marshaler { return NewHeading1(nil, WithColor(c)) },
		"heading_2":          func(c Color) json.Marshaler { return NewHeading2(nil, WithColor(c)) },
		"heading_3":          func(c Color) json.Marshaler { return NewHeading3(nil, WithColor(c)) },
		"callout":            func(c Color) json.Marshaler { return NewCallout(nil, WithColor(c)) },
		"quote":              func(c Color) json.Marshaler { return NewQuote(nil, WithColor(c)) },
		"bulleted_list_item": func(c Color) json.Marshaler { return NewBulletedListItem(nil, WithColor(c)) },
		"numbered_list_item": func(c Color) json.Marshaler { return NewNumberedListItem(nil, WithColor(c)) },
		"to_do":              func(c Color) json.Marshaler { return NewToDo(false, nil, WithColor(c)) },
		"toggle":             func(c Color) json.Marshaler { return NewToggle(nil, WithColor(c)) },
		"table_of_contents":  func(c Color) json.Marshaler { return NewTableOfContents(WithColor(c)) },
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			for _, c := range []Color{richtext.ColorBlue, richtext.ColorBlueBackground, richtext.ColorBrown} {
				assert.Equal(t, string(c), payload(t, build(c))["color"])
			}
		})
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	p := payload(t, NewParagraph(nil))

	assert.Equal(t, []any{}, p["rich_text"])
	assert.NotContains(t, p, "children")
	assert.NotContains(t, p, "color")
}

func TestNewCallout_Icon(t *testing.T) {
	m := decode(t, NewCallout(nil, WithIcon(EmojiIcon("abc"))))

	assert.Equal(t, map[string]any{
		"type": "callout",
		"callout": map[string]any{
			"rich_text": []any{},
			"icon": map[string]any{
				"type":  "emoji",
				"emoji": "abc",
			},
		},
	}, m)

	p := payload(t, NewCallout(nil, WithIcon(ExternalIcon(sampleURL))))
	assert.Equal(t, map[string]any{
		"type":     "external",
		"external": map[string]any{"url": sampleURL},
	}, p["icon"])
}

func TestNewToDo_Checked(t *testing.T) {
	for _, checked := range []bool{true, false} {
		m := decode(t, NewToDo(checked, nil))
		assert.Equal(t, map[string]any{
			"type": "to_do",
			"to_do": map[string]any{
				"rich_text": []any{},
				"checked":   checked,
			},
		}, m)
	}
}

func TestNewHeading_Toggleable(t *testing.T) {
	assert.NotContains(t, payload(t, NewHeading2(nil)), "is_toggleable")
	assert.Equal(t, true, payload(t, NewHeading2(nil, WithToggleable()))["is_toggleable"])
}

func TestNewCode(t *testing.T) {
	custom := NewCode(nil, WithLanguage(codelang.ABAP))
	def := NewCode(nil)

	assert.Equal(t, codelang.ABAP, custom.Language)
	assert.Equal(t, codelang.Language("plain text"), def.Language)

	p := payload(t, def)
	assert.Equal(t, "plain text", p["language"])
	assert.Equal(t, []any{}, p["caption"], "caption defaults to an empty array")

	// Unknown languages pass through untouched.
	assert.Equal(t, codelang.Language("Go"), NewCode(nil, WithLanguage("Go")).Language)
}

func TestMediaBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block json.Marshaler
	}{
		{"image", NewImage(sampleURL)},
		{"video", NewVideo(sampleURL)},
		{"file", NewFile(sampleURL)},
		{"pdf", NewPDF(sampleURL)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, map[string]any{
				"type":     "external",
				"caption":  []any{},
				"external": map[string]any{"url": sampleURL},
			}, payload(t, tt.block))
		})
	}
}

func TestLinkBlocks(t *testing.T) {
	assert.Equal(t, sampleURL, NewEmbed(sampleURL).URL)
	assert.Equal(t, sampleURL, NewBookmark(sampleURL).URL)
	assert.NotContains(t, payload(t, NewBookmark(sampleURL)), "caption")
}

func TestNewEquation(t *testing.T) {
	assert.Equal(t, "abc", payload(t, NewEquation("abc"))["expression"])
}

func TestEmptyPayloads(t *testing.T) {
	assert.Empty(t, payload(t, NewDivider()))
	assert.Empty(t, payload(t, NewBreadcrumb()))
	assert.Empty(t, payload(t, NewTableOfContents()))
}

func TestNewColumnList(t *testing.T) {
	cols := []Column{NewColumn(sampleChildren()...), NewColumn(NewDivider())}

	p := payload(t, NewColumnList(cols...))

	assert.Equal(t, jsonOf(t, cols), p["children"])
	assert.Equal(t, []any{}, payload(t, NewColumnList())["children"])
}

func TestReadOnlyBlocks(t *testing.T) {
	assert.Equal(t, "abc", NewChildPage("abc").Title)
	assert.Equal(t, "abc", NewChildDatabase("abc").Title)
	assert.Equal(t, sampleURL, NewLinkPreview(sampleURL).URL)

	ro := []ReadOnlyBlock{NewChildPage("a"), NewChildDatabase("b"), NewLinkPreview("c")}
	for _, b := range ro {
		_, writable := b.(Block)
		assert.False(t, writable, "%s must not satisfy Block", b.Type())
	}
}

func TestNewLinkToPage(t *testing.T) {
	tests := []struct {
		target LinkTarget
		want   map[string]any
	}{
		{PageID, map[string]any{"type": "page_id", "page_id": "abc"}},
		{DatabaseID, map[string]any{"type": "database_id", "database_id": "abc"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, payload(t, NewLinkToPage(tt.target, "abc")))
		})
	}
}

func TestLinkToPage_UnknownTarget(t *testing.T) {
	_, err := json.Marshal(LinkToPage{Target: "comment_id", ID: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestSyncedBlock(t *testing.T) {
	children := sampleChildren()

	t.Run("original", func(t *testing.T) {
		b := NewOriginalSyncedBlock(children...)
		assert.False(t, b.IsReference())
		assert.Equal(t, map[string]any{
			"synced_from": nil,
			"children":    jsonOf(t, children),
		}, payload(t, b))
	})

	t.Run("original without children", func(t *testing.T) {
		assert.Equal(t, map[string]any{
			"synced_from": nil,
			"children":    []any{},
		}, payload(t, NewOriginalSyncedBlock()))
	})

	t.Run("reference", func(t *testing.T) {
		b := NewReferenceSyncedBlock("abc")
		assert.True(t, b.IsReference())
		assert.Equal(t, map[string]any{
			"synced_from": map[string]any{"block_id": "abc"},
		}, payload(t, b))
	})

	t.Run("reference with children is rejected", func(t *testing.T) {
		b := NewReferenceSyncedBlock("abc")
		b.Children = children

		_, err := json.Marshal(b)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})
}

func TestNewTable(t *testing.T) {
	rows := []TableRow{NewTableRow(richtext.Plain("a"), richtext.Plain("b"))}

	p := payload(t, NewTable(123, rows))
	assert.Equal(t, float64(123), p["table_width"])
	assert.Equal(t, jsonOf(t, rows), p["children"])

	t.Run("row header", func(t *testing.T) {
		assert.Equal(t, true, payload(t, NewTable(3, nil, WithRowHeader(true)))["has_row_header"])
		assert.Equal(t, false, payload(t, NewTable(3, nil, WithRowHeader(false)))["has_row_header"])
		assert.NotContains(t, payload(t, NewTable(3, nil)), "has_row_header")
	})

	t.Run("column header", func(t *testing.T) {
		assert.Equal(t, true, payload(t, NewTable(3, nil, WithColumnHeader(true)))["has_column_header"])
		assert.Equal(t, false, payload(t, NewTable(3, nil, WithColumnHeader(false)))["has_column_header"])
		assert.NotContains(t, payload(t, NewTable(3, nil)), "has_column_header")
	})

	t.Run("row header only leaves column header unset", func(t *testing.T) {
		tbl := NewTable(3, nil, WithRowHeader(true))
		require.NotNil(t, tbl.HasRowHeader)
		assert.True(t, *tbl.HasRowHeader)
		assert.Nil(t, tbl.HasColumnHeader)
	})
}

func TestNewTableRow(t *testing.T) {
	cells := [][]richtext.RichText{sampleRichText(), sampleRichText(), sampleRichText()}

	assert.Equal(t, jsonOf(t, cells), payload(t, NewTableRow(cells...))["cells"])
	assert.Equal(t, []any{}, payload(t, NewTableRow())["cells"])
}

func TestBuilders_Idempotent(t *testing.T) {
	build := func() Block {
		return NewToggle(richtext.Plain("t"),
			WithColor(richtext.ColorRed),
			WithChildren(
				NewCode(richtext.Plain("x := 1"), WithLanguage(codelang.Go)),
				NewTable(2, []TableRow{NewTableRow(richtext.Plain("a"), richtext.Plain("b"))}, WithColumnHeader(true)),
			))
	}

	assert.Equal(t, build(), build())

	a, err := json.Marshal(build())
	require.NoError(t, err)
	b, err := json.Marshal(build())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEnvelope_KeyOrder(t *testing.T) {
	data, err := json.Marshal(NewDivider())
	require.NoError(t, err)
	assert.Equal(t, `{"type":"divider","divider":{}}`, string(data))
}
