// Package derive appends computed feature columns to a frame.
package derive

import (
	"context"
	"math"
	"time"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

const (
	AgeColumn    = "movie_age"
	DecadeColumn = "decade"
	ROIColumn    = "roi"
)

// Age adds movie_age (ReferenceYear minus release year) and decade
// (release year floored to a multiple of ten). Integer years give integer
// features, float years give float features; null years stay null.
type Age struct {
	Column        string
	ReferenceYear int
}

func (t *Age) Name() string { return "derive_age" }

func (t *Age) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	ref := t.ReferenceYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	var age, decade j.Column
	switch c := col.(type) {
	case *j.IntColumn:
		a, d := j.NewIntColumn(AgeColumn, c.Len()), j.NewIntColumn(DecadeColumn, c.Len())
		for i := 0; i < c.Len(); i++ {
			if y, ok := c.Get(i); ok {
				a.Set(i, int64(ref)-y)
				d.Set(i, int64(math.Floor(float64(y)/10))*10)
			}
		}
		age, decade = a, d
	case *j.FloatColumn:
		a, d := j.NewFloatColumn(AgeColumn, c.Len()), j.NewFloatColumn(DecadeColumn, c.Len())
		for i := 0; i < c.Len(); i++ {
			if y, ok := c.Get(i); ok {
				a.Set(i, float64(ref)-y)
				d.Set(i, math.Floor(y/10)*10)
			}
		}
		age, decade = a, d
	default:
		return f, nil
	}
	for _, c := range []j.Column{age, decade} {
		if err := f.SetColumn(c); err != nil {
			return f, err
		}
	}
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "features derived", Fields: map[string]any{"columns": []string{AgeColumn, DecadeColumn}, "reference_year": ref}})
	return f, nil
}

// ROI adds roi = (revenue - budget) / budget. A zero budget or a null input
// yields a null roi.
type ROI struct {
	Revenue string
	Budget  string
}

func (t *ROI) Name() string { return "derive_roi" }

func (t *ROI) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	rc, ok := f.ColumnByName(t.Revenue)
	if !ok {
		return f, nil
	}
	bc, ok := f.ColumnByName(t.Budget)
	if !ok {
		return f, nil
	}
	rev, bud := j.ToFloat(rc), j.ToFloat(bc)
	if rev == nil || bud == nil {
		return f, nil
	}
	roi := j.NewFloatColumn(ROIColumn, f.Rows())
	var undefined int
	for i := 0; i < f.Rows(); i++ {
		r, rok := rev.Get(i)
		b, bok := bud.Get(i)
		if !rok || !bok || b == 0 {
			undefined++
			continue
		}
		roi.Set(i, (r-b)/b)
	}
	if err := f.SetColumn(roi); err != nil {
		return f, err
	}
	j.Emit(ctx, j.Event{Stage: t.Name(), Level: j.LevelInfo, Message: "features derived", Fields: map[string]any{"columns": []string{ROIColumn}, "undefined": undefined}})
	return f, nil
}
