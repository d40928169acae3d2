package blocks

import (
	"fmt"

	"github.com/hpungsan/scribe/pkg/errors"
)

// LinkTarget selects what a link_to_page block points at.
type LinkTarget string

const (
	PageID     LinkTarget = "page_id"
	DatabaseID LinkTarget = "database_id"
)

// LinkToPage links to a page or database.
type LinkToPage struct {
	Target LinkTarget
	ID     string
}

// NewLinkToPage builds a link_to_page block whose payload is keyed by target.
func NewLinkToPage(target LinkTarget, id string) LinkToPage {
	return LinkToPage{Target: target, ID: id}
}

// MarshalJSON implements json.Marshaler.
func (b LinkToPage) MarshalJSON() ([]byte, error) {
	payload := struct {
		Type       LinkTarget `json:"type"`
		PageID     string     `json:"page_id,omitempty"`
		DatabaseID string     `json:"database_id,omitempty"`
	}{Type: b.Target}

	switch b.Target {
	case PageID:
		payload.PageID = b.ID
	case DatabaseID:
		payload.DatabaseID = b.ID
	default:
		return nil, errors.NewConfiguration(fmt.Sprintf("unknown link_to_page target %q", b.Target))
	}
	return envelope(TypeLinkToPage, payload)
}

// SyncedFrom points a reference synced block at its original.
type SyncedFrom struct {
	BlockID string `json:"block_id"`
}

// SyncedBlock is either an original synced block (SyncedFrom nil, holding
// Children) or a reference to one (SyncedFrom set, no Children).
type SyncedBlock struct {
	SyncedFrom *SyncedFrom
	Children   []Block
}

// NewOriginalSyncedBlock builds the source-of-truth synced block.
func NewOriginalSyncedBlock(children ...Block) SyncedBlock {
	return SyncedBlock{Children: orEmpty(children)}
}

// NewReferenceSyncedBlock builds a synced block mirroring the block with the given ID.
func NewReferenceSyncedBlock(blockID string) SyncedBlock {
	return SyncedBlock{SyncedFrom: &SyncedFrom{BlockID: blockID}}
}

// IsReference reports whether b mirrors another block.
func (b SyncedBlock) IsReference() bool {
	return b.SyncedFrom != nil
}

// MarshalJSON implements json.Marshaler. A reference carrying children is a
// CONFIGURATION error.
func (b SyncedBlock) MarshalJSON() ([]byte, error) {
	if b.SyncedFrom != nil {
		if len(b.Children) > 0 {
			return nil, errors.NewConfiguration("synced_block cannot have both synced_from and children")
		}
		return envelope(TypeSyncedBlock, struct {
			SyncedFrom *SyncedFrom `json:"synced_from"`
		}{b.SyncedFrom})
	}
	return envelope(TypeSyncedBlock, struct {
		SyncedFrom *SyncedFrom `json:"synced_from"`
		Children   []Block     `json:"children"`
	}{nil, orEmpty(b.Children)})
}

func (LinkToPage) Type() Type  { return TypeLinkToPage }
func (SyncedBlock) Type() Type { return TypeSyncedBlock }

func (LinkToPage) block()  {}
func (SyncedBlock) block() {}
