package ops

import (
	stderrors "errors"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/markdown"
	"github.com/hpungsan/scribe/pkg/blocks"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/request"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	Markdown string // required
	ConvertOptions
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	Children   []blocks.Block `json:"children"`
	BlockCount int            `json:"block_count"`
}

// Convert turns markdown into an append-children block array.
func Convert(cfg *config.Config, input ConvertInput) (*ConvertOutput, error) {
	children, err := convertMarkdown(cfg, input.Markdown, input.ConvertOptions)
	if err != nil {
		return nil, err
	}
	return &ConvertOutput{
		Children:   children,
		BlockCount: request.CountBlocks(children),
	}, nil
}

func convertMarkdown(cfg *config.Config, src string, in ConvertOptions) ([]blocks.Block, error) {
	if src == "" {
		return nil, errors.NewInvalidRequest("markdown is required")
	}
	opts, err := markdownOptions(cfg, in)
	if err != nil {
		return nil, err
	}
	children, err := markdown.Convert([]byte(src), opts)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []blocks.Block{}
	}
	return children, nil
}

// ValidateInput contains parameters for the ValidatePayload operation.
type ValidateInput struct {
	Markdown string // required
	ConvertOptions
}

// ValidateOutput reports whether the converted payload fits one request.
type ValidateOutput struct {
	Valid      bool     `json:"valid"`
	BlockCount int      `json:"block_count"`
	Violations []string `json:"violations"`
}

// ValidatePayload converts markdown and checks the result against the request limits.
// Limit violations are reported in the output, not as an error.
func ValidatePayload(cfg *config.Config, input ValidateInput) (*ValidateOutput, error) {
	children, err := convertMarkdown(cfg, input.Markdown, input.ConvertOptions)
	if err != nil {
		return nil, err
	}

	out := &ValidateOutput{
		Valid:      true,
		BlockCount: request.CountBlocks(children),
		Violations: []string{},
	}

	if err := request.Validate(children); err != nil {
		var sErr *errors.ScribeError
		if !stderrors.As(err, &sErr) || sErr.Code != errors.ErrLimitExceeded {
			return nil, err
		}
		out.Valid = false
		out.Violations, _ = sErr.Details["violations"].([]string)
	}
	return out, nil
}

// BatchInput contains parameters for the BatchPayload operation.
type BatchInput struct {
	Markdown    string // required
	MaxChildren int    // default: config max_blocks_per_request
	ConvertOptions
}

// BatchOutput contains the request bodies to send in order.
type BatchOutput struct {
	Requests   []request.AppendChildren `json:"requests"`
	BlockCount int                      `json:"block_count"`
}

// BatchPayload converts markdown and splits it into append requests that
// each respect the request limits.
func BatchPayload(cfg *config.Config, input BatchInput) (*BatchOutput, error) {
	children, err := convertMarkdown(cfg, input.Markdown, input.ConvertOptions)
	if err != nil {
		return nil, err
	}

	maxChildren := input.MaxChildren
	if maxChildren <= 0 && cfg != nil {
		maxChildren = cfg.MaxBlocksPerRequest
	}

	batches, err := request.Batch(children, maxChildren)
	if err != nil {
		return nil, err
	}
	if batches == nil {
		batches = []request.AppendChildren{}
	}

	return &BatchOutput{
		Requests:   batches,
		BlockCount: request.CountBlocks(children),
	}, nil
}
