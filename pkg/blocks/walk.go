package blocks

import (
	stderrors "errors"

	"github.com/hpungsan/scribe/pkg/richtext"
)

// SkipChildren may be returned by a WalkFunc to skip a block's descendants.
var SkipChildren = stderrors.New("skip children")

// WalkFunc is called for every block visited by Walk. depth is 0 for the
// blocks passed to Walk.
type WalkFunc func(b Block, depth int) error

// Walk visits blocks depth-first in document order. Returning SkipChildren
// skips the current block's descendants; any other error stops the walk.
func Walk(bs []Block, fn WalkFunc) error {
	return walk(bs, 0, fn)
}

func walk(bs []Block, depth int, fn WalkFunc) error {
	for _, b := range bs {
		if err := fn(b, depth); err != nil {
			if stderrors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
		if err := walk(Children(b), depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the blocks nested directly under b.
func Children(b Block) []Block {
	switch v := b.(type) {
	case interface{ textBody() TextBody }:
		return v.textBody().Children
	case Template:
		return v.Children
	case Column:
		return v.Children
	case ColumnList:
		out := make([]Block, len(v.Children))
		for i, c := range v.Children {
			out[i] = c
		}
		return out
	case Table:
		out := make([]Block, len(v.Children))
		for i, r := range v.Children {
			out[i] = r
		}
		return out
	case SyncedBlock:
		return v.Children
	}
	return nil
}

// RichTexts returns every rich-text array carried by b itself (content,
// caption, table cells), not those of its children.
func RichTexts(b Block) [][]richtext.RichText {
	switch v := b.(type) {
	case interface{ textBody() TextBody }:
		return [][]richtext.RichText{v.textBody().RichText}
	case Template:
		return [][]richtext.RichText{v.RichText}
	case Code:
		return [][]richtext.RichText{v.RichText, v.Caption}
	case interface{ fileBody() FileBody }:
		return [][]richtext.RichText{v.fileBody().Caption}
	case Embed:
		return [][]richtext.RichText{v.Caption}
	case Bookmark:
		return [][]richtext.RichText{v.Caption}
	case TableRow:
		return v.Cells
	}
	return nil
}

// URLs returns the URL fields carried by b itself.
func URLs(b Block) []string {
	switch v := b.(type) {
	case interface{ fileBody() FileBody }:
		return []string{v.fileBody().External.URL}
	case Embed:
		return []string{v.URL}
	case Bookmark:
		return []string{v.URL}
	case Callout:
		if v.Icon != nil && v.Icon.External != nil {
			return []string{v.Icon.External.URL}
		}
	}
	return nil
}
