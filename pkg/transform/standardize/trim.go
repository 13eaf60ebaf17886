package standardize

import (
	"context"
	"strings"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Trim strips leading and trailing whitespace from a text column. With
// Coerce set, a non-text column is first converted to text. Missing cells
// stay missing; they are not rendered as the text "nan" the way a pandas
// astype(str) conversion would.
type Trim struct {
	Column string
	Coerce bool
}

func (t *Trim) Name() string { return "trim" }

func (t *Trim) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.StringColumn)
	if !ok {
		if !t.Coerce {
			return f, nil
		}
		c = j.ToString(col)
		if err := f.SetColumn(c); err != nil {
			return f, err
		}
	}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v, _ := c.Get(i)
		c.Set(i, strings.TrimSpace(v))
	}
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "title column trimmed", Fields: map[string]any{"column": t.Column}})
	return f, nil
}
