package impute

import (
	"context"

	"github.com/spf13/cast"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Constant fills every null cell of a column with a fixed value, coerced to
// the column kind.
type Constant struct {
	Column string
	Value  any
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	var filled int
	switch c := col.(type) {
	case *j.FloatColumn:
		vv, err := cast.ToFloat64E(t.Value)
		if err != nil {
			return f, err
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
				filled++
			}
		}
	case *j.IntColumn:
		vv, err := cast.ToInt64E(t.Value)
		if err != nil {
			return f, err
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
				filled++
			}
		}
	case *j.StringColumn:
		vv := cast.ToString(t.Value)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
				filled++
			}
		}
	}
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelDebug, Message: "filled with constant", Fields: map[string]any{"column": t.Column, "value": t.Value, "filled": filled}})
	return f, nil
}
