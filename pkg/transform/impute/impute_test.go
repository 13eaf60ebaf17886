package impute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

func makeFloatFrame() *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "x", Type: j.KindFloat, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*j.FloatColumn)
	c.Set(0, 1.0)
	c.Set(2, 3.0)
	// rows 1,3,4 remain null
	return f
}

func stringFrame(vals ...any) *j.Frame {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{{Name: "country", Type: j.KindString, Nullable: true}}})
	for i, v := range vals {
		f.AppendNullRow()
		_ = f.SetCell(i, "country", v)
	}
	return f
}

func floats(t *testing.T, f *j.Frame, name string) []float64 {
	t.Helper()
	col, ok := f.ColumnByName(name)
	require.True(t, ok)
	c, ok := col.(*j.FloatColumn)
	require.True(t, ok, "column %s is %v", name, col.Kind())
	out := make([]float64, c.Len())
	for i := range out {
		v, ok := c.Get(i)
		require.True(t, ok, "null left at row %d", i)
		out[i] = v
	}
	return out
}

func TestConstant(t *testing.T) {
	f := makeFloatFrame()
	out, err := (&Constant{Column: "x", Value: 2.5}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3, 2.5, 2.5}, floats(t, out, "x"))
}

func TestMean(t *testing.T) {
	f := makeFloatFrame()
	out, err := (&Mean{Column: "x"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 2, 2}, floats(t, out, "x"))
}

func TestMedian(t *testing.T) {
	f := makeFloatFrame()
	c, _ := f.ColumnByName("x")
	c.(*j.FloatColumn).Set(3, 10)
	out, err := (&Median{Column: "x"}).Apply(context.Background(), f)
	require.NoError(t, err)
	// observed 1, 3, 10
	assert.Equal(t, []float64{1, 3, 3, 10, 3}, floats(t, out, "x"))
}

func TestMedianEvenCount(t *testing.T) {
	out, err := (&Median{Column: "x"}).Apply(context.Background(), makeFloatFrame())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 2, 2}, floats(t, out, "x"))
}

func TestMedianPromotesFractionalIntMedian(t *testing.T) {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{{Name: "duration", Type: j.KindInt, Nullable: true}}})
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "duration", int64(90))
	_ = f.SetCell(1, "duration", int64(91))
	out, err := (&Median{Column: "duration"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 91, 90.5}, floats(t, out, "duration"))
	assert.Equal(t, j.KindFloat, out.Schema().Columns[0].Type)
}

func TestMedianAllMissingLeavesColumn(t *testing.T) {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{{Name: "gross", Type: j.KindFloat, Nullable: true}}})
	f.AppendNullRow()
	f.AppendNullRow()
	rec := &j.Recorder{}
	out, err := (&Median{Column: "gross"}).Apply(j.WithObserver(context.Background(), rec), f)
	require.NoError(t, err)
	col, _ := out.ColumnByName("gross")
	assert.True(t, col.IsNull(0))
	assert.True(t, col.IsNull(1))
	require.Len(t, rec.Events, 1)
	assert.Equal(t, j.LevelWarn, rec.Events[0].Level)
}

func TestModeFillsMostFrequent(t *testing.T) {
	f := stringFrame("USA", "USA", nil, "UK")
	out, err := (&Mode{Column: "country"}).Apply(context.Background(), f)
	require.NoError(t, err)
	got := make([]any, out.Rows())
	for r := range got {
		got[r], _ = out.Cell(r, "country")
	}
	assert.Equal(t, []any{"USA", "USA", "USA", "UK"}, got)
}

func TestModeTiesPickSmallest(t *testing.T) {
	f := stringFrame("UK", "USA", "USA", "UK", nil)
	out, err := (&Mode{Column: "country"}).Apply(context.Background(), f)
	require.NoError(t, err)
	v, _ := out.Cell(4, "country")
	assert.Equal(t, "UK", v)

	g := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{{Name: "aspect_ratio", Type: j.KindFloat, Nullable: true}}})
	for i, v := range []any{2.35, 1.85, nil, 2.35, 1.85} {
		g.AppendNullRow()
		_ = g.SetCell(i, "aspect_ratio", v)
	}
	out, err = (&Mode{Column: "aspect_ratio"}).Apply(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.35, 1.85, 1.85, 2.35, 1.85}, floats(t, out, "aspect_ratio"))
}

func TestModePlaceholder(t *testing.T) {
	out, err := (&Mode{Column: "country"}).Apply(context.Background(), stringFrame(nil, nil))
	require.NoError(t, err)
	v, _ := out.Cell(1, "country")
	assert.Equal(t, DefaultPlaceholder, v)

	g := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{{Name: "aspect_ratio", Type: j.KindFloat, Nullable: true}}})
	g.AppendNullRow()
	out, err = (&Mode{Column: "aspect_ratio", Placeholder: "n/a"}).Apply(context.Background(), g)
	require.NoError(t, err)
	col, _ := out.ColumnByName("aspect_ratio")
	assert.Equal(t, j.KindString, col.Kind())
	v, _ = out.Cell(0, "aspect_ratio")
	assert.Equal(t, "n/a", v)
}

func TestDropMissing(t *testing.T) {
	f := makeFloatFrame()
	rec := &j.Recorder{}
	out, err := (&DropMissing{Column: "x"}).Apply(j.WithObserver(context.Background(), rec), f)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, floats(t, out, "x"))
	assert.Equal(t, 3, rec.ByStage("drop_missing")[0].Fields["removed"])
}

func TestMissingColumnsAreSkipped(t *testing.T) {
	f := makeFloatFrame()
	for _, tf := range []j.Transform{&Mean{Column: "nope"}, &Median{Column: "nope"}, &Mode{Column: "nope"}, &Constant{Column: "nope", Value: 1}, &DropMissing{Column: "nope"}} {
		out, err := tf.Apply(context.Background(), f)
		require.NoError(t, err, tf.Name())
		assert.Same(t, f, out, tf.Name())
	}
}
