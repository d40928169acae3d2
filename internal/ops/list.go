package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/scribe/internal/db"
	"github.com/hpungsan/scribe/internal/drafts"
)

// ListDraftsInput contains parameters for the ListDrafts operation.
type ListDraftsInput struct {
	Workspace      string // defaults to "default"
	Limit          int    // default: 20, max: 100
	Offset         int    // default: 0
	IncludeDeleted bool
}

// ListDraftsOutput contains the result of the ListDrafts operation.
type ListDraftsOutput struct {
	Items      []drafts.Summary `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// ListDrafts retrieves draft summaries for a workspace with pagination.
func ListDrafts(ctx context.Context, database *sql.DB, input ListDraftsInput) (*ListDraftsOutput, error) {
	workspace := drafts.NormalizeWorkspace(input.Workspace)

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := max(input.Offset, 0)

	summaries, total, err := db.ListByWorkspace(ctx, database, workspace, limit, offset, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []drafts.Summary{}
	}

	return &ListDraftsOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "updated_at_desc",
	}, nil
}
