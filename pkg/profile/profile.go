package profile

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// ColumnMissing is the missing-value tally for one column.
type ColumnMissing struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Missing int     `json:"missing"`
	Percent float64 `json:"percent"`
}

// MissingReport lists columns that have missing cells, most missing first.
type MissingReport struct {
	Rows    int             `json:"rows"`
	Columns []ColumnMissing `json:"columns"`
}

// CollectMissing tallies nulls per column. Percent is rounded to two
// decimals; ties keep schema order.
func CollectMissing(f *j.Frame) MissingReport {
	rep := MissingReport{Rows: f.Rows()}
	for _, c := range f.Columns() {
		var n int
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		pct := math.Round(float64(n)/float64(f.Rows())*100*100) / 100
		rep.Columns = append(rep.Columns, ColumnMissing{Name: c.Name(), Kind: c.Kind().String(), Missing: n, Percent: pct})
	}
	sort.SliceStable(rep.Columns, func(a, b int) bool { return rep.Columns[a].Missing > rep.Columns[b].Missing })
	return rep
}

// ReportText renders the report as an aligned table.
func (r MissingReport) ReportText() string {
	var b strings.Builder
	if len(r.Columns) == 0 {
		b.WriteString("no missing values\n")
		return b.String()
	}
	width := len("column")
	for _, c := range r.Columns {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	fmt.Fprintf(&b, "%-*s  %8s  %8s\n", width, "column", "missing", "percent")
	for _, c := range r.Columns {
		fmt.Fprintf(&b, "%-*s  %8d  %7.2f%%\n", width, c.Name, c.Missing, c.Percent)
	}
	return b.String()
}

// Missing is a pass-through transform that emits the missing report of the
// frame it sees.
type Missing struct{}

func (t *Missing) Name() string { return "missing_report" }

func (t *Missing) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	rep := CollectMissing(f)
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "missing value summary", Fields: map[string]any{"rows": rep.Rows, "columns_with_missing": len(rep.Columns)}})
	for _, c := range rep.Columns {
		j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "missing values", Fields: map[string]any{"column": c.Name, "missing": c.Missing, "percent": c.Percent}})
	}
	return f, nil
}
