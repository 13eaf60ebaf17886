package impute

import (
	"context"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// DropMissing removes rows whose value in Column is null.
type DropMissing struct{ Column string }

func (t *DropMissing) Name() string { return "drop_missing" }

func (t *DropMissing) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	out := f.Filter(func(row int) bool { return !col.IsNull(row) })
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "rows with missing required value removed", Fields: map[string]any{"column": t.Column, "removed": f.Rows() - out.Rows()}})
	return out, nil
}
