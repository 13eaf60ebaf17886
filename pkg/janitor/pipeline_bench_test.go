package janitor

import (
	"context"
	"testing"
)

func makeFrame(rows int) *Frame {
	s := Schema{Columns: []ColumnSchema{{Name: "budget", Type: KindFloat, Nullable: true}, {Name: "title_year", Type: KindInt, Nullable: true}, {Name: "movie_title", Type: KindString, Nullable: true}}}
	f := NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "budget", float64(i%100))
		_ = f.SetCell(i, "title_year", int64(1950+i%70))
		_ = f.SetCell(i, "movie_title", "x")
	}
	return f
}

type noopTransform struct{}

func (n *noopTransform) Name() string                                        { return "noop" }
func (n *noopTransform) Apply(ctx context.Context, f *Frame) (*Frame, error) { return f, nil }

type evenRows struct{}

func (evenRows) Name() string { return "even_rows" }
func (evenRows) Apply(ctx context.Context, f *Frame) (*Frame, error) {
	return f.Filter(func(r int) bool { return r%2 == 0 }), nil
}

func BenchmarkPipeline(b *testing.B) {
	f := makeFrame(100000)
	p := NewPipeline().Add(&noopTransform{}).Add(&noopTransform{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(context.Background(), f)
	}
}

func BenchmarkFilter(b *testing.B) {
	f := makeFrame(100000)
	p := NewPipeline().Add(evenRows{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(context.Background(), f)
	}
}
