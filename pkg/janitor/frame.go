package janitor

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Text returns the canonical text form of row i, or false when null.
	Text(i int) (string, bool)
	// Take returns a new column holding the given rows in order.
	Take(rows []int) Column
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	c := &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return strconv.FormatInt(c.data[i], 10), true
}
func (c *IntColumn) Take(rows []int) Column {
	out := &IntColumn{name: c.name, data: make([]int64, len(rows)), nulls: make([]bool, len(rows))}
	for k, r := range rows {
		out.data[k], out.nulls[k] = c.data[r], c.nulls[r]
	}
	return out
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	c := &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *FloatColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return FormatFloat(c.data[i]), true
}
func (c *FloatColumn) Take(rows []int) Column {
	out := &FloatColumn{name: c.name, data: make([]float64, len(rows)), nulls: make([]bool, len(rows))}
	for k, r := range rows {
		out.data[k], out.nulls[k] = c.data[r], c.nulls[r]
	}
	return out
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	c := &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) Text(i int) (string, bool) {
	return c.data[i], !c.nulls[i]
}
func (c *StringColumn) Take(rows []int) Column {
	out := &StringColumn{name: c.name, data: make([]string, len(rows)), nulls: make([]bool, len(rows))}
	for k, r := range rows {
		out.data[k], out.nulls[k] = c.data[r], c.nulls[r]
	}
	return out
}

// FormatFloat renders a float without exponent notation, so large budgets
// stay readable in text outputs.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToString converts any column into a StringColumn using each cell's text form.
func ToString(c Column) *StringColumn {
	if sc, ok := c.(*StringColumn); ok {
		return sc
	}
	out := NewStringColumn(c.Name(), c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Text(i); ok {
			out.Set(i, v)
		}
	}
	return out
}

// ToFloat converts an IntColumn into a FloatColumn. Other kinds are returned
// unchanged when already float, and nil otherwise.
func ToFloat(c Column) *FloatColumn {
	switch col := c.(type) {
	case *FloatColumn:
		return col
	case *IntColumn:
		out := NewFloatColumn(col.name, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				out.Set(i, float64(v))
			}
		}
		return out
	}
	return nil
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	s = Schema{Columns: append([]ColumnSchema(nil), s.Columns...)}
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		f.cols[i] = newColumn(cs.Name, cs.Type, 0)
		f.index[cs.Name] = i
	}
	return f
}

func newColumn(name string, k Kind, n int) Column {
	switch k {
	case KindInt:
		return NewIntColumn(name, n)
	case KindFloat:
		return NewFloatColumn(name, n)
	case KindString:
		return NewStringColumn(name, n)
	default:
		panic("invalid column kind")
	}
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Columns returns the columns in schema order.
func (f *Frame) Columns() []Column { return f.cols }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist). Numeric values
// are coerced to the column kind; nil clears the cell.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *IntColumn:
		switch v.(type) {
		case int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
		x, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		col.Set(row, x)
	case *FloatColumn:
		switch v.(type) {
		case int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
		x, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		col.Set(row, x)
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// Cell returns the value at (row, name) as int64, float64 or string, and
// false when the cell is null or the column is unknown.
func (f *Frame) Cell(row int, name string) (any, bool) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return nil, false
	}
	switch col := c.(type) {
	case *IntColumn:
		if v, ok := col.Get(row); ok {
			return v, true
		}
	case *FloatColumn:
		if v, ok := col.Get(row); ok {
			return v, true
		}
	case *StringColumn:
		if v, ok := col.Get(row); ok {
			return v, true
		}
	}
	return nil, false
}

// SetColumn replaces the column with the same name, or appends it when the
// name is new. The column length must match the frame's row count.
func (f *Frame) SetColumn(c Column) error {
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	cs := ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	if i, ok := f.index[c.Name()]; ok {
		f.cols[i] = c
		f.schema.Columns[i] = cs
		return nil
	}
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	f.schema.Columns = append(f.schema.Columns, cs)
	return nil
}

// Take returns a new frame holding the given rows in the given order.
func (f *Frame) Take(rows []int) *Frame {
	out := &Frame{
		schema: Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)},
		cols:   make([]Column, len(f.cols)),
		index:  make(map[string]int, len(f.index)),
		nrows:  len(rows),
	}
	for i, c := range f.cols {
		out.cols[i] = c.Take(rows)
	}
	for k, v := range f.index {
		out.index[k] = v
	}
	return out
}

// Filter returns a new frame keeping rows for which keep reports true.
// Relative row order is preserved.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	rows := make([]int, 0, f.nrows)
	for r := 0; r < f.nrows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return f.Take(rows)
}
