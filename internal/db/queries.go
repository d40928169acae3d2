package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/scribe/internal/drafts"
	"github.com/hpungsan/scribe/pkg/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.ScribeError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

const draftColumns = `id, workspace_raw, workspace_norm, name_raw, name_norm,
			title, source, payload_json, block_count,
			created_at, updated_at, deleted_at`

// Insert stores a new draft in the database.
func Insert(ctx context.Context, db *sql.DB, d *drafts.Draft) error {
	query := `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err := db.ExecContext(ctx, query,
		d.ID, d.WorkspaceRaw, d.WorkspaceNorm, toNullString(d.NameRaw), toNullString(d.NameNorm),
		toNullString(d.Title), d.Source, d.PayloadJSON, d.BlockCount,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// Upsert inserts d, or replaces the content of the active draft holding the
// same (workspace, name). Returns the ID of the stored row, which is the
// existing draft's ID on replace.
func Upsert(ctx context.Context, db *sql.DB, d *drafts.Draft) (string, error) {
	query := `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(workspace_norm, name_norm) WHERE name_norm IS NOT NULL AND deleted_at IS NULL
		DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			payload_json = excluded.payload_json,
			block_count = excluded.block_count,
			updated_at = excluded.updated_at
		RETURNING id
	`

	var id string
	err := db.QueryRowContext(ctx, query,
		d.ID, d.WorkspaceRaw, d.WorkspaceNorm, toNullString(d.NameRaw), toNullString(d.NameNorm),
		toNullString(d.Title), d.Source, d.PayloadJSON, d.BlockCount,
		d.CreatedAt, d.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves a draft by its ULID.
// If includeDeleted is false, soft-deleted drafts are excluded.
func GetByID(ctx context.Context, db *sql.DB, id string, includeDeleted bool) (*drafts.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	d, err := scanDraft(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return d, nil
}

// GetByName retrieves a draft by normalized workspace and name.
// If includeDeleted is false, soft-deleted drafts are excluded.
func GetByName(ctx context.Context, db *sql.DB, workspaceNorm, nameNorm string, includeDeleted bool) (*drafts.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE workspace_norm = ? AND name_norm = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	} else {
		// Prefer the active draft, else the most recently updated deleted one.
		query += " ORDER BY (deleted_at IS NULL) DESC, updated_at DESC LIMIT 1"
	}

	d, err := scanDraft(db.QueryRowContext(ctx, query, workspaceNorm, nameNorm))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return d, nil
}

// CheckNameExists checks if an active draft with the given name exists.
func CheckNameExists(ctx context.Context, db *sql.DB, workspaceNorm, nameNorm string) (bool, error) {
	query := `
		SELECT 1 FROM drafts
		WHERE workspace_norm = ? AND name_norm = ? AND deleted_at IS NULL
		LIMIT 1
	`

	var exists int
	err := db.QueryRowContext(ctx, query, workspaceNorm, nameNorm).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return true, nil
}

// UpdateByID replaces the content of an existing draft and bumps updated_at.
// Does NOT change: id, workspace, name
func UpdateByID(ctx context.Context, db *sql.DB, d *drafts.Draft) error {
	now := time.Now().Unix()

	query := `
		UPDATE drafts
		SET title = ?, source = ?, payload_json = ?, block_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.ExecContext(ctx, query,
		toNullString(d.Title), d.Source, d.PayloadJSON, d.BlockCount, now,
		d.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(d.ID)
	}

	d.UpdatedAt = now
	return nil
}

// SoftDelete marks a draft as deleted by setting deleted_at.
func SoftDelete(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `
		UPDATE drafts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, time.Now().Unix(), id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ListByWorkspace returns draft summaries for a workspace, newest first,
// together with the total number of matching drafts.
func ListByWorkspace(ctx context.Context, db *sql.DB, workspaceNorm string, limit, offset int, includeDeleted bool) ([]drafts.Summary, int, error) {
	where := "WHERE workspace_norm = ?"
	if !includeDeleted {
		where += " AND deleted_at IS NULL"
	}

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM drafts "+where, workspaceNorm).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.QueryContext(ctx, `SELECT `+draftColumns+` FROM drafts `+where+`
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?`, workspaceNorm, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []drafts.Summary
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, d.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return out, total, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDraft scans a single row into a Draft struct.
func scanDraft(row scanner) (*drafts.Draft, error) {
	var (
		d         drafts.Draft
		nameRaw   sql.NullString
		nameNorm  sql.NullString
		title     sql.NullString
		deletedAt sql.NullInt64
	)

	err := row.Scan(
		&d.ID, &d.WorkspaceRaw, &d.WorkspaceNorm, &nameRaw, &nameNorm,
		&title, &d.Source, &d.PayloadJSON, &d.BlockCount,
		&d.CreatedAt, &d.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	d.NameRaw = fromNullString(nameRaw)
	d.NameNorm = fromNullString(nameNorm)
	d.Title = fromNullString(title)
	if deletedAt.Valid {
		d.DeletedAt = &deletedAt.Int64
	}

	return &d, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
