package ops

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/hpungsan/scribe/internal/db"
	"github.com/hpungsan/scribe/internal/drafts"
)

// FetchDraftInput contains parameters for the FetchDraft operation.
type FetchDraftInput struct {
	ID             string
	Workspace      string
	Name           string
	IncludeDeleted bool
	IncludeSource  *bool // default: true (nil means default)
}

// FetchDraftOutput contains the result of the FetchDraft operation.
type FetchDraftOutput struct {
	drafts.Summary
	Source  string          `json:"source,omitempty"`
	Payload json.RawMessage `json:"payload"`
	Key     DraftKey        `json:"key"`
}

// FetchDraft retrieves a draft by ID or name.
func FetchDraft(ctx context.Context, database *sql.DB, input FetchDraftInput) (*FetchDraftOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Workspace, input.Name)
	if err != nil {
		return nil, err
	}

	var d *drafts.Draft
	if addr.ByID {
		d, err = db.GetByID(ctx, database, addr.ID, input.IncludeDeleted)
	} else {
		d, err = db.GetByName(ctx, database, addr.Workspace, addr.Name, input.IncludeDeleted)
	}
	if err != nil {
		return nil, err
	}

	output := &FetchDraftOutput{
		Summary: d.ToSummary(),
		Payload: json.RawMessage(d.PayloadJSON),
	}

	includeSource := true
	if input.IncludeSource != nil {
		includeSource = *input.IncludeSource
	}
	if includeSource {
		output.Source = d.Source
	}

	name := ""
	if d.NameRaw != nil {
		name = *d.NameRaw
	}
	output.Key = BuildDraftKey(d.WorkspaceRaw, name, d.ID)

	return output, nil
}
