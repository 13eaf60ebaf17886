package janitor_test

import (
	"context"
	"errors"
	"testing"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
	imp "github.com/wdm0006/moviejanitor/pkg/transform/impute"
	std "github.com/wdm0006/moviejanitor/pkg/transform/standardize"
)

func TestPipeline(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "budget", Type: j.KindFloat, Nullable: true}, {Name: "movie_title", Type: j.KindString, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "budget", 1.0)
	_ = f.SetCell(0, "movie_title", " Avatar ")
	// row 1 left nulls

	rec := &j.Recorder{}
	p := j.NewPipeline().Add(&imp.Median{Column: "budget"}).Add(&std.Trim{Column: "movie_title"}).Observe(rec)
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	colX, _ := out.ColumnByName("budget")
	fx := colX.(*j.FloatColumn)
	if fx.IsNull(1) {
		t.Fatal("imputer failed to fill null")
	}
	colS, _ := out.ColumnByName("movie_title")
	ss := colS.(*j.StringColumn)
	s0, _ := ss.Get(0)
	if s0 != "Avatar" {
		t.Fatalf("trim failed, got %q", s0)
	}
	if !ss.IsNull(1) {
		t.Fatal("trim filled a missing title")
	}

	done := 0
	for _, e := range rec.Events {
		if e.Message == "stage done" {
			done++
		}
	}
	if done != 2 {
		t.Fatalf("got %d stage done events, want 2", done)
	}
}

type failing struct{}

func (failing) Name() string { return "explode" }
func (failing) Apply(context.Context, *j.Frame) (*j.Frame, error) {
	return nil, errors.New("boom")
}

func TestPipelineWrapsStageErrors(t *testing.T) {
	f := j.NewFrame(j.Schema{})
	_, err := j.NewPipeline().Add(failing{}).Run(context.Background(), f)
	if err == nil || err.Error() != "explode: boom" {
		t.Fatalf("got %v", err)
	}
}

func TestObserverFromContext(t *testing.T) {
	rec := &j.Recorder{}
	ctx := j.WithObserver(context.Background(), rec)
	j.Emit(ctx, j.Event{Stage: "load", Message: "hello"})
	j.Emit(context.Background(), j.Event{Stage: "load", Message: "dropped"})
	if len(rec.ByStage("load")) != 1 {
		t.Fatalf("got %d events", len(rec.Events))
	}
}
