package impute

import (
	"context"
	"math"
	"sort"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Median fills nulls with the median of the observed values. A column with
// no observed values is left untouched. Integer columns whose median is
// fractional are promoted to float.
type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *j.FloatColumn:
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if !c.IsNull(i) {
				v, _ := c.Get(i)
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			warnAllMissing(ctx, t.Name(), t.Column)
			return f, nil
		}
		fillFloat(ctx, t.Name(), c, median(vals))
	case *j.IntColumn:
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if !c.IsNull(i) {
				v, _ := c.Get(i)
				vals = append(vals, float64(v))
			}
		}
		if len(vals) == 0 {
			warnAllMissing(ctx, t.Name(), t.Column)
			return f, nil
		}
		med := median(vals)
		if med == math.Trunc(med) {
			fillInt(ctx, t.Name(), c, int64(med))
			return f, nil
		}
		fc := j.ToFloat(c)
		if err := f.SetColumn(fc); err != nil {
			return f, err
		}
		fillFloat(ctx, t.Name(), fc, med)
	}
	return f, nil
}

// median sorts vals in place.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2
	}
	return vals[mid]
}

func fillFloat(ctx context.Context, stage string, c *j.FloatColumn, v float64) {
	var filled int
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, v)
			filled++
		}
	}
	j.Emit(ctx, j.Event{Stage: stage, Level: j.LevelDebug, Message: "column filled", Fields: map[string]any{"column": c.Name(), "value": v, "filled": filled}})
}

func fillInt(ctx context.Context, stage string, c *j.IntColumn, v int64) {
	var filled int
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, v)
			filled++
		}
	}
	j.Emit(ctx, j.Event{Stage: stage, Level: j.LevelDebug, Message: "column filled", Fields: map[string]any{"column": c.Name(), "value": v, "filled": filled}})
}

func warnAllMissing(ctx context.Context, stage, column string) {
	j.Emit(ctx, j.Event{Stage: stage, Level: j.LevelWarn, Message: "column has no observed values; left missing", Fields: map[string]any{"column": column}})
}
