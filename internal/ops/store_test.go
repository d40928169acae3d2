package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/db"
	"github.com/hpungsan/scribe/pkg/errors"
)

const notesMarkdown = "# Notes\n\n- one\n- two\n"

func stringPtr(s string) *string {
	return &s
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSaveDraft_HappyPath_Named(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	output, err := SaveDraft(ctx, database, config.DefaultConfig(), SaveDraftInput{
		Workspace: "MyWorkspace",
		Name:      stringPtr("Weekly Notes"),
		Markdown:  notesMarkdown,
	})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	if output.ID == "" {
		t.Error("ID should not be empty")
	}
	if output.BlockCount != 3 {
		t.Errorf("BlockCount = %d, want 3", output.BlockCount)
	}
	if output.Key.Name != "Weekly Notes" || output.Key.Workspace != "MyWorkspace" {
		t.Errorf("Key = %+v, want name address", output.Key)
	}

	d, err := db.GetByName(ctx, database, "myworkspace", "weekly notes", false)
	require.NoError(t, err)
	assert.Equal(t, output.ID, d.ID)
	assert.Equal(t, notesMarkdown, d.Source)
	require.NotNil(t, d.Title)
	assert.Equal(t, "Weekly Notes", *d.Title)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal([]byte(d.PayloadJSON), &payload))
	require.Len(t, payload, 3)
	assert.Equal(t, "heading_1", payload[0]["type"])
}

func TestSaveDraft_Unnamed(t *testing.T) {
	database := openTestDB(t)

	output, err := SaveDraft(context.Background(), database, config.DefaultConfig(), SaveDraftInput{
		Markdown: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, DraftKey{ID: output.ID}, output.Key)

	d, err := db.GetByID(context.Background(), database, output.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "default", d.WorkspaceNorm)
	assert.Nil(t, d.NameNorm)
	assert.Nil(t, d.Title)
}

func TestSaveDraft_NameCollision(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	cfg := config.DefaultConfig()

	_, err := SaveDraft(ctx, database, cfg, SaveDraftInput{Name: stringPtr("dup"), Markdown: "a"})
	require.NoError(t, err)

	_, err = SaveDraft(ctx, database, cfg, SaveDraftInput{Name: stringPtr("  DUP "), Markdown: "b"})
	if !errors.Is(err, errors.ErrNameAlreadyExists) {
		t.Fatalf("SaveDraft() error = %v, want NAME_ALREADY_EXISTS", err)
	}
}

func TestSaveDraft_Replace(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	cfg := config.DefaultConfig()

	first, err := SaveDraft(ctx, database, cfg, SaveDraftInput{Name: stringPtr("doc"), Markdown: "a"})
	require.NoError(t, err)

	second, err := SaveDraft(ctx, database, cfg, SaveDraftInput{
		Name:     stringPtr("doc"),
		Markdown: "a\n\nb",
		Mode:     SaveModeReplace,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.BlockCount)

	d, err := db.GetByID(ctx, database, first.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", d.Source)
}

func TestSaveDraft_ReplaceCreatesWhenMissing(t *testing.T) {
	database := openTestDB(t)

	out, err := SaveDraft(context.Background(), database, config.DefaultConfig(), SaveDraftInput{
		Name:     stringPtr("fresh"),
		Markdown: "x",
		Mode:     SaveModeReplace,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}

func TestSaveDraft_InvalidInput(t *testing.T) {
	database := openTestDB(t)
	cfg := config.DefaultConfig()

	tests := []struct {
		name  string
		input SaveDraftInput
		code  errors.ErrorCode
	}{
		{"missing markdown", SaveDraftInput{}, errors.ErrInvalidRequest},
		{"blank name", SaveDraftInput{Name: stringPtr("  "), Markdown: "x"}, errors.ErrInvalidRequest},
		{"bad mode", SaveDraftInput{Markdown: "x", Mode: "merge"}, errors.ErrInvalidRequest},
		{"unknown language", SaveDraftInput{Markdown: "x", ConvertOptions: ConvertOptions{Language: "nope"}}, errors.ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SaveDraft(context.Background(), database, cfg, tt.input)
			if !errors.Is(err, tt.code) {
				t.Errorf("SaveDraft() error = %v, want %s", err, tt.code)
			}
		})
	}
}
