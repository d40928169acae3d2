package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/db"
	"github.com/hpungsan/scribe/internal/drafts"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/request"
)

// SaveMode controls collision behavior.
type SaveMode string

const (
	SaveModeError   SaveMode = "error"   // default: fail on name collision
	SaveModeReplace SaveMode = "replace" // overwrite existing
)

// SaveDraftInput contains parameters for the SaveDraft operation.
type SaveDraftInput struct {
	Workspace string  // default: "default"
	Name      *string // optional
	Title     *string // default: same as name, or nil
	Markdown  string  // required
	Mode      SaveMode
	ConvertOptions
}

// SaveDraftOutput contains the result of the SaveDraft operation.
type SaveDraftOutput struct {
	ID         string   `json:"id"`
	BlockCount int      `json:"block_count"`
	Key        DraftKey `json:"key"`
}

// SaveDraft converts markdown and stores the resulting payload as a draft.
func SaveDraft(ctx context.Context, database *sql.DB, cfg *config.Config, input SaveDraftInput) (*SaveDraftOutput, error) {
	if input.Markdown == "" {
		return nil, errors.NewInvalidRequest("markdown is required")
	}

	if strings.TrimSpace(input.Workspace) == "" {
		input.Workspace = drafts.DefaultWorkspace
	}
	if input.Mode == "" {
		input.Mode = SaveModeError
	}
	if input.Mode != SaveModeError && input.Mode != SaveModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	workspaceNorm := drafts.Normalize(input.Workspace)

	var nameRaw, nameNorm *string
	if input.Name != nil {
		normalized := drafts.Normalize(*input.Name)
		if normalized == "" {
			return nil, errors.NewInvalidRequest("name must not be empty (omit it for unnamed drafts)")
		}
		nameRaw = input.Name
		nameNorm = &normalized
	}

	title := cleanOptionalString(input.Title)
	if title == nil && nameRaw != nil {
		title = nameRaw
	}

	children, err := convertMarkdown(cfg, input.Markdown, input.ConvertOptions)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(children)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()

	d := &drafts.Draft{
		ID:            id,
		WorkspaceRaw:  input.Workspace,
		WorkspaceNorm: workspaceNorm,
		NameRaw:       nameRaw,
		NameNorm:      nameNorm,
		Title:         title,
		Source:        input.Markdown,
		PayloadJSON:   string(payload),
		BlockCount:    request.CountBlocks(children),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	name := ""
	if nameRaw != nil {
		name = *nameRaw
	}

	if input.Mode == SaveModeReplace && nameNorm != nil {
		storedID, err := db.Upsert(ctx, database, d)
		if err != nil {
			return nil, err
		}
		return &SaveDraftOutput{
			ID:         storedID,
			BlockCount: d.BlockCount,
			Key:        BuildDraftKey(input.Workspace, name, storedID),
		}, nil
	}

	if err := db.Insert(ctx, database, d); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewNameAlreadyExists(input.Workspace, name)
		}
		return nil, err
	}

	return &SaveDraftOutput{
		ID:         id,
		BlockCount: d.BlockCount,
		Key:        BuildDraftKey(input.Workspace, name, id),
	}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
