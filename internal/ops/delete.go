package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/scribe/internal/db"
)

// DeleteDraftInput contains parameters for the DeleteDraft operation.
type DeleteDraftInput struct {
	ID        string
	Workspace string
	Name      string
}

// DeleteDraftOutput contains the result of the DeleteDraft operation.
type DeleteDraftOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DeleteDraft soft-deletes a draft.
func DeleteDraft(ctx context.Context, database *sql.DB, input DeleteDraftInput) (*DeleteDraftOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Workspace, input.Name)
	if err != nil {
		return nil, err
	}

	// Resolve the ID when addressed by name
	draftID := addr.ID
	if !addr.ByID {
		d, err := db.GetByName(ctx, database, addr.Workspace, addr.Name, false)
		if err != nil {
			return nil, err
		}
		draftID = d.ID
	}

	// SoftDelete reports NOT_FOUND for missing or already deleted drafts
	if err := db.SoftDelete(ctx, database, draftID); err != nil {
		return nil, err
	}

	return &DeleteDraftOutput{
		Deleted: true,
		ID:      draftID,
	}, nil
}
