package ops

import (
	"strings"

	"github.com/google/uuid"

	"github.com/hpungsan/scribe/internal/markdown"
	"github.com/hpungsan/scribe/pkg/blocks"
	"github.com/hpungsan/scribe/pkg/chunk"
	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/limits"
	"github.com/hpungsan/scribe/pkg/richtext"
)

// RichTextInput contains parameters for the BuildRichText operation.
type RichTextInput struct {
	Content       string
	Equation      bool
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Color         string
	Link          string
}

// BuildRichText builds chunked rich-text runs with the requested styling.
func BuildRichText(input RichTextInput) ([]richtext.RichText, error) {
	opts := richtext.Options{LinkURL: strings.TrimSpace(input.Link)}
	if input.Equation {
		opts.Mode = richtext.ModeEquation
	}

	color := richtext.Color(strings.TrimSpace(input.Color))
	if color != "" && !color.Valid() {
		return nil, errors.NewInvalidRequest("unknown color: " + string(color))
	}
	if n := chunk.Len(opts.LinkURL); n > limits.RichTextLinkURL {
		return nil, errors.NewLimitExceeded([]string{"link url exceeds 1000 characters"}, nil)
	}

	if input.Bold || input.Italic || input.Strikethrough || input.Underline || input.Code || color != "" {
		if color == "" {
			color = richtext.ColorDefault
		}
		opts.Annotations = &richtext.Annotations{
			Bold:          input.Bold,
			Italic:        input.Italic,
			Strikethrough: input.Strikethrough,
			Underline:     input.Underline,
			Code:          input.Code,
			Color:         color,
		}
	}

	return richtext.Build(input.Content, opts), nil
}

// ChunkOutput is the result of the Chunk operation.
type ChunkOutput struct {
	Chunks []string `json:"chunks"`
	Count  int      `json:"count"`
}

// Chunk splits text into pieces of at most size characters.
func Chunk(text string, size int) (*ChunkOutput, error) {
	parts, err := chunk.Split(text, size)
	if err != nil {
		return nil, err
	}
	return &ChunkOutput{Chunks: parts, Count: len(parts)}, nil
}

// LanguageOutput is the result of the CheckLanguage operation.
type LanguageOutput struct {
	Input     string `json:"input"`
	Supported bool   `json:"supported"`
	Language  string `json:"language,omitempty"` // resolved tag when supported
	Alias     bool   `json:"alias,omitempty"`    // input was an alias of Language
}

// CheckLanguage reports whether name is a supported code language tag or a
// known alias of one.
func CheckLanguage(name string) LanguageOutput {
	out := LanguageOutput{Input: name}
	lang, ok := markdown.ResolveLanguage(name)
	if !ok {
		return out
	}
	out.Supported = true
	out.Language = string(lang)
	out.Alias = strings.ToLower(strings.TrimSpace(name)) != out.Language
	return out
}

// ListLanguages returns every supported language tag, sorted.
func ListLanguages() []string {
	all := codelang.All()
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = string(l)
	}
	return out
}

// LimitEntry is one row of the limits table.
type LimitEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ListLimits returns the API limits, sorted by name.
func ListLimits() []LimitEntry {
	names := limits.Names()
	out := make([]LimitEntry, len(names))
	for i, name := range names {
		v, _ := limits.Lookup(name)
		out[i] = LimitEntry{Name: name, Value: v}
	}
	return out
}

// normalizeObjectID accepts dashed or undashed UUIDs (and urn/brace forms)
// and returns the canonical dashed form.
func normalizeObjectID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidRequest(field + " is required")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", errors.NewInvalidRequest(field + " must be a UUID: " + err.Error())
	}
	return parsed.String(), nil
}

// LinkToPage builds a link_to_page block for a page or database id.
func LinkToPage(target, id string) (blocks.LinkToPage, error) {
	t := blocks.LinkTarget(strings.TrimSpace(target))
	if t == "" {
		t = blocks.PageID
	}
	if t != blocks.PageID && t != blocks.DatabaseID {
		return blocks.LinkToPage{}, errors.NewInvalidRequest("target must be one of: page_id, database_id")
	}

	canonical, err := normalizeObjectID(string(t), id)
	if err != nil {
		return blocks.LinkToPage{}, err
	}
	return blocks.NewLinkToPage(t, canonical), nil
}

// SyncedReference builds a synced_block that mirrors an existing original block.
func SyncedReference(blockID string) (blocks.SyncedBlock, error) {
	canonical, err := normalizeObjectID("block_id", blockID)
	if err != nil {
		return blocks.SyncedBlock{}, err
	}
	return blocks.NewReferenceSyncedBlock(canonical), nil
}
