// Package request assembles blocks into write-request bodies and checks them
// against the API's aggregate limits, which individual builders do not enforce.
package request

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hpungsan/scribe/pkg/blocks"
	"github.com/hpungsan/scribe/pkg/chunk"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/limits"
	"github.com/hpungsan/scribe/pkg/richtext"
)

// AppendChildren is the body of an append-block-children request.
type AppendChildren struct {
	Children []blocks.Block `json:"children"`
}

// CountBlocks returns the number of blocks in the tree, at every depth.
func CountBlocks(children []blocks.Block) int {
	n := 0
	_ = blocks.Walk(children, func(blocks.Block, int) error {
		n++
		return nil
	})
	return n
}

// Validate checks children against the request limits and reports every
// violation at once. It returns nil or a LIMIT_EXCEEDED ScribeError whose
// cause is a *multierror.Error listing each violation.
func Validate(children []blocks.Block) error {
	var result *multierror.Error

	if total := CountBlocks(children); total > limits.PayloadBlocks {
		result = multierror.Append(result, fmt.Errorf("request holds %d blocks (max %d)", total, limits.PayloadBlocks))
	}
	if len(children) > limits.BlockArrays {
		result = multierror.Append(result, fmt.Errorf("children: %d elements (max %d)", len(children), limits.BlockArrays))
	}

	// Paths look like children[2](toggle).children[0](paragraph).
	var walk func(bs []blocks.Block, prefix string)
	walk = func(bs []blocks.Block, prefix string) {
		for i, b := range bs {
			at := fmt.Sprintf("%s[%d](%s)", prefix, i, b.Type())
			result = checkBlock(result, at, b)

			kids := blocks.Children(b)
			if len(kids) > limits.BlockArrays {
				result = multierror.Append(result, fmt.Errorf("%s.children: %d elements (max %d)", at, len(kids), limits.BlockArrays))
			}
			walk(kids, at+".children")
		}
	}
	walk(children, "children")

	if result == nil {
		return nil
	}
	violations := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		violations[i] = e.Error()
	}
	return errors.NewLimitExceeded(violations, result.ErrorOrNil())
}

func checkBlock(result *multierror.Error, at string, b blocks.Block) *multierror.Error {
	for i, rt := range blocks.RichTexts(b) {
		if len(rt) > limits.RichTextArrays {
			result = multierror.Append(result, fmt.Errorf("%s rich text #%d: %d runs (max %d)", at, i, len(rt), limits.RichTextArrays))
		}
		for j, run := range rt {
			result = checkRun(result, fmt.Sprintf("%s rich text #%d run %d", at, i, j), run)
		}
	}

	for _, u := range blocks.URLs(b) {
		if n := chunk.Len(u); n > limits.URL {
			result = multierror.Append(result, fmt.Errorf("%s url: %d characters (max %d)", at, n, limits.URL))
		}
	}

	if eq, ok := b.(blocks.Equation); ok {
		if n := chunk.Len(eq.Expression); n > limits.RichTextEquationExpression {
			result = multierror.Append(result, fmt.Errorf("%s expression: %d characters (max %d)", at, n, limits.RichTextEquationExpression))
		}
	}
	return result
}

func checkRun(result *multierror.Error, at string, run richtext.RichText) *multierror.Error {
	if run.Text != nil {
		if n := chunk.Len(run.Text.Content); n > limits.RichTextContent {
			result = multierror.Append(result, fmt.Errorf("%s content: %d characters (max %d)", at, n, limits.RichTextContent))
		}
		if run.Text.Link != nil {
			if n := chunk.Len(run.Text.Link.URL); n > limits.RichTextLinkURL {
				result = multierror.Append(result, fmt.Errorf("%s link: %d characters (max %d)", at, n, limits.RichTextLinkURL))
			}
		}
	}
	if run.Equation != nil {
		if n := chunk.Len(run.Equation.Expression); n > limits.RichTextEquationExpression {
			result = multierror.Append(result, fmt.Errorf("%s expression: %d characters (max %d)", at, n, limits.RichTextEquationExpression))
		}
	}
	return result
}

// Batch splits top-level children into request bodies. Each body holds at
// most maxChildren top-level blocks (capped at the children array limit) and
// at most the payload block limit counting nested blocks. A single top-level
// block that alone exceeds the payload limit is a LIMIT_EXCEEDED error.
func Batch(children []blocks.Block, maxChildren int) ([]AppendChildren, error) {
	if maxChildren <= 0 || maxChildren > limits.BlockArrays {
		maxChildren = limits.BlockArrays
	}

	var batches []AppendChildren
	var current []blocks.Block
	weight := 0

	for i, b := range children {
		w := CountBlocks([]blocks.Block{b})
		if w > limits.PayloadBlocks {
			msg := fmt.Sprintf("children[%d](%s) holds %d blocks (max %d per request)", i, b.Type(), w, limits.PayloadBlocks)
			return nil, errors.NewLimitExceeded([]string{msg}, nil)
		}
		if len(current) == maxChildren || weight+w > limits.PayloadBlocks {
			batches = append(batches, AppendChildren{Children: current})
			current, weight = nil, 0
		}
		current = append(current, b)
		weight += w
	}
	if len(current) > 0 {
		batches = append(batches, AppendChildren{Children: current})
	}
	return batches, nil
}
