package janitor

import "testing"

func movieFrame() *Frame {
	f := NewFrame(Schema{Columns: []ColumnSchema{
		{Name: "movie_title", Type: KindString, Nullable: true},
		{Name: "title_year", Type: KindInt, Nullable: true},
		{Name: "budget", Type: KindFloat, Nullable: true},
	}})
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "movie_title", "Avatar")
	_ = f.SetCell(0, "title_year", int64(2009))
	_ = f.SetCell(0, "budget", 237000000.0)
	_ = f.SetCell(1, "movie_title", "Spectre")
	_ = f.SetCell(2, "title_year", 2010)
	return f
}

func TestSetCellCoercesNumbers(t *testing.T) {
	f := movieFrame()
	if err := f.SetCell(1, "budget", 5); err != nil {
		t.Fatal(err)
	}
	if v, ok := f.Cell(1, "budget"); !ok || v != 5.0 {
		t.Fatalf("got %v %v", v, ok)
	}
	if v, _ := f.Cell(2, "title_year"); v != int64(2010) {
		t.Fatalf("got %v", v)
	}
	if err := f.SetCell(0, "budget", "lots"); err == nil {
		t.Fatal("expected error for text in float column")
	}
	if err := f.SetCell(0, "movie_title", 7); err == nil {
		t.Fatal("expected error for number in text column")
	}
	if err := f.SetCell(0, "genre", "x"); err == nil {
		t.Fatal("expected error for unknown column")
	}
	_ = f.SetCell(0, "budget", nil)
	if _, ok := f.Cell(0, "budget"); ok {
		t.Fatal("nil should clear the cell")
	}
}

func TestTextForms(t *testing.T) {
	f := movieFrame()
	c, _ := f.ColumnByName("budget")
	if s, ok := c.Text(0); !ok || s != "237000000" {
		t.Fatalf("got %q", s)
	}
	if _, ok := c.Text(1); ok {
		t.Fatal("null cell has text")
	}
	sc := ToString(c)
	if sc.Kind() != KindString || !sc.IsNull(1) {
		t.Fatal("ToString lost the null mask")
	}
	y, _ := f.ColumnByName("title_year")
	if fc := ToFloat(y); fc == nil || fc.IsNull(0) {
		t.Fatal("ToFloat failed on int column")
	}
	title, _ := f.ColumnByName("movie_title")
	if ToFloat(title) != nil {
		t.Fatal("ToFloat converted text")
	}
}

func TestSetColumnReplacesAndAppends(t *testing.T) {
	f := movieFrame()
	if err := f.SetColumn(ToString(mustColumn(t, f, "title_year"))); err != nil {
		t.Fatal(err)
	}
	if f.Schema().Columns[1].Type != KindString || f.Cols() != 3 {
		t.Fatalf("replace failed: %+v", f.Schema())
	}
	if err := f.SetColumn(NewIntColumn("decade", 3)); err != nil {
		t.Fatal(err)
	}
	if names := f.Schema().Names(); len(names) != 4 || names[3] != "decade" {
		t.Fatalf("append failed: %v", names)
	}
	if err := f.SetColumn(NewIntColumn("short", 1)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	f := movieFrame()
	out := f.Filter(func(r int) bool { return r != 1 })
	if out.Rows() != 2 || f.Rows() != 3 {
		t.Fatalf("rows: out=%d in=%d", out.Rows(), f.Rows())
	}
	if v, _ := out.Cell(1, "title_year"); v != int64(2010) {
		t.Fatalf("got %v", v)
	}
	// schema of the result is independent of the source
	_ = out.SetColumn(NewIntColumn("decade", 2))
	if f.Cols() != 3 {
		t.Fatal("filtered frame shares schema with source")
	}
}

func TestNewFrameCopiesSchema(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{{Name: "a", Type: KindInt}}}
	f := NewFrame(s)
	f.AppendNullRow()
	_ = f.SetColumn(ToString(mustColumn(t, f, "a")))
	if s.Columns[0].Type != KindInt {
		t.Fatal("caller schema mutated")
	}
}

func mustColumn(t *testing.T, f *Frame, name string) Column {
	t.Helper()
	c, ok := f.ColumnByName(name)
	if !ok {
		t.Fatalf("no column %s", name)
	}
	return c
}
