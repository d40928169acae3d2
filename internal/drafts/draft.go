package drafts

// Draft is a converted append-children payload saved locally for later use.
type Draft struct {
	// ID is a ULID that uniquely identifies this draft
	ID string

	// WorkspaceRaw is the original workspace string as provided by the user
	WorkspaceRaw string

	// WorkspaceNorm is the normalized workspace (lowercased, trimmed, collapsed spaces)
	WorkspaceNorm string

	// NameRaw is the original name as provided by the user (nullable)
	NameRaw *string

	// NameNorm is the normalized name (nullable)
	NameNorm *string

	// Title is an optional human-readable title
	Title *string

	// Source is the markdown the payload was converted from
	Source string

	// PayloadJSON is the serialized block array
	PayloadJSON string

	// BlockCount is the number of blocks in the payload, at every depth
	BlockCount int

	// CreatedAt is the Unix timestamp when the draft was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the draft was last updated
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// Summary is a draft without its source and payload.
type Summary struct {
	ID         string  `json:"id"`
	Workspace  string  `json:"workspace"`
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	BlockCount int     `json:"block_count"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  int64   `json:"updated_at"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`
}

// ToSummary strips the source and payload.
func (d *Draft) ToSummary() Summary {
	return Summary{
		ID:         d.ID,
		Workspace:  d.WorkspaceRaw,
		Name:       d.NameRaw,
		Title:      d.Title,
		BlockCount: d.BlockCount,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}
}
