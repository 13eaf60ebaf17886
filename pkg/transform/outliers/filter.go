package outliers

import (
	"context"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Filter keeps only rows whose value in Column lies within [Min, Max].
// A nil bound is open. Null cells never satisfy the range and are removed.
type Filter struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Filter) Name() string { return "filter_range" }

func (t *Filter) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	var value func(row int) (float64, bool)
	switch c := col.(type) {
	case *j.FloatColumn:
		value = c.Get
	case *j.IntColumn:
		value = func(row int) (float64, bool) {
			v, ok := c.Get(row)
			return float64(v), ok
		}
	default:
		return f, nil
	}
	out := f.Filter(func(row int) bool {
		v, ok := value(row)
		if !ok {
			return false
		}
		if t.Min != nil && v < *t.Min {
			return false
		}
		if t.Max != nil && v > *t.Max {
			return false
		}
		return true
	})
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "out-of-range rows removed", Fields: map[string]any{"column": t.Column, "removed": f.Rows() - out.Rows()}})
	return out, nil
}

// Bound is a convenience for building Filter bounds.
func Bound(v float64) *float64 { return &v }
