// Package dedup removes repeated rows from a frame.
package dedup

import (
	"context"
	"strconv"
	"strings"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Exact drops rows whose cells are identical across every column, keeping
// the first occurrence. Null equals null.
type Exact struct{}

func (t *Exact) Name() string { return "drop_duplicates" }

func (t *Exact) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	seen := make(map[string]struct{}, f.Rows())
	var b strings.Builder
	out := f.Filter(func(row int) bool {
		k := rowKey(&b, f.Columns(), row)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
	removed := f.Rows() - out.Rows()
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "duplicate rows removed", Fields: map[string]any{"removed": removed}})
	return out, nil
}

// rowKey encodes a row so that two rows share a key only when every cell
// matches. Each cell is prefixed by a null marker and its length, which keeps
// values containing separators from colliding.
func rowKey(b *strings.Builder, cols []j.Column, row int) string {
	b.Reset()
	for _, c := range cols {
		v, ok := c.Text(row)
		if !ok {
			b.WriteString("N;")
			continue
		}
		b.WriteByte('V')
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	return b.String()
}
