package impute

import (
	"context"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// DefaultPlaceholder fills categorical columns that have no observed value.
const DefaultPlaceholder = "Unknown"

// Mode fills nulls with the most frequent observed value. Ties resolve to the
// smallest value. When nothing is observed the column is filled with
// Placeholder, converting it to text if needed.
type Mode struct {
	Column      string
	Placeholder string
}

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	filled := false
	switch c := col.(type) {
	case *j.StringColumn:
		if best, ok := mode(c.Len(), c.Get, func(a, b string) bool { return a < b }); ok {
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					c.Set(i, best)
				}
			}
			j.Emit(ctx, modeEvent(t, best))
			filled = true
		}
	case *j.IntColumn:
		if best, ok := mode(c.Len(), c.Get, func(a, b int64) bool { return a < b }); ok {
			fillInt(ctx, t.Name(), c, best)
			filled = true
		}
	case *j.FloatColumn:
		if best, ok := mode(c.Len(), c.Get, func(a, b float64) bool { return a < b }); ok {
			fillFloat(ctx, t.Name(), c, best)
			filled = true
		}
	}
	if filled {
		return f, nil
	}
	return t.fillPlaceholder(ctx, f, col)
}

func (t *Mode) fillPlaceholder(ctx context.Context, f *j.Frame, col j.Column) (*j.Frame, error) {
	if col.Len() == 0 {
		return f, nil
	}
	ph := t.Placeholder
	if ph == "" {
		ph = DefaultPlaceholder
	}
	if col.Kind() != j.KindString {
		if err := f.SetColumn(j.ToString(col)); err != nil {
			return f, err
		}
	}
	return (&Constant{Column: t.Column, Value: ph}).Apply(ctx, f)
}

func modeEvent(t *Mode, v any) j.Event {
	return j.Event{Stage: t.Name(), Level: j.LevelDebug, Message: "column filled", Fields: map[string]any{"column": t.Column, "value": v}}
}

// mode returns the most frequent non-null value reported by get, preferring
// the smallest among equally frequent values.
func mode[T comparable](n int, get func(int) (T, bool), less func(a, b T) bool) (T, bool) {
	counts := map[T]int{}
	var best T
	var bestc int
	for i := 0; i < n; i++ {
		v, ok := get(i)
		if !ok {
			continue
		}
		counts[v]++
		c := counts[v]
		if c > bestc || (c == bestc && less(v, best)) {
			bestc = c
			best = v
		}
	}
	return best, bestc > 0
}
