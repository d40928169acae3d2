package ops

import (
	"strings"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/drafts"
	"github.com/hpungsan/scribe/internal/markdown"
	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Address represents a validated draft address.
type Address struct {
	ByID      bool
	ID        string
	Workspace string // normalized, defaulted to "default" for name-mode
	Name      string // normalized
}

// ValidateAddress validates addressing parameters and returns a normalized Address.
// Rules:
// - Must specify exactly one addressing mode: id OR (workspace + name)
// - If id provided with name or workspace → INVALID_REQUEST
// - If neither id nor name provided → INVALID_REQUEST
func ValidateAddress(id, workspace, name string) (*Address, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	workspace = strings.TrimSpace(workspace)

	hasID := id != ""
	hasName := name != ""
	hasWorkspace := workspace != ""

	if hasID && (hasName || hasWorkspace) {
		return nil, errors.NewInvalidRequest("ambiguous address: use either id or workspace+name, not both")
	}

	if !hasID && !hasName {
		return nil, errors.NewInvalidRequest("must specify either id or name")
	}

	if hasID {
		return &Address{
			ByID: true,
			ID:   id,
		}, nil
	}

	nameNorm := drafts.Normalize(name)
	if nameNorm == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	return &Address{
		Workspace: drafts.NormalizeWorkspace(workspace),
		Name:      nameNorm,
	}, nil
}

// DraftKey tells a caller how to fetch a draft again.
// Either (Name + Workspace) or ID is populated.
type DraftKey struct {
	Workspace string `json:"workspace,omitempty"`
	Name      string `json:"name,omitempty"`
	ID        string `json:"id,omitempty"`
}

// BuildDraftKey prefers the name address for named drafts.
func BuildDraftKey(workspace, name, id string) DraftKey {
	if name != "" {
		return DraftKey{Workspace: workspace, Name: name}
	}
	return DraftKey{ID: id}
}

// ConvertOptions are the markdown conversion knobs shared by the payload operations.
type ConvertOptions struct {
	Language string // overrides config default_language
	Strict   bool   // OR-ed with config strict_languages
}

// markdownOptions merges per-call options over configuration.
func markdownOptions(cfg *config.Config, in ConvertOptions) (markdown.Options, error) {
	lang := strings.TrimSpace(in.Language)
	if lang == "" && cfg != nil {
		lang = cfg.DefaultLanguage
	}

	opts := markdown.Options{Strict: in.Strict || (cfg != nil && cfg.StrictLanguages)}
	if lang != "" {
		resolved, ok := markdown.ResolveLanguage(lang)
		if !ok {
			return markdown.Options{}, errors.NewUnknownLanguage(lang)
		}
		opts.DefaultLanguage = resolved
	} else {
		opts.DefaultLanguage = codelang.Default
	}
	return opts, nil
}

// cleanOptionalString trims s and maps blank to nil.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
