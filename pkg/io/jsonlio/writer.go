package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"

	iox "github.com/wdm0006/moviejanitor/pkg/io/ioutils"
	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// WriteAll writes one JSON object per row. Null cells are omitted.
func WriteAll(path string, f *j.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func Write(out io.Writer, f *j.Frame) error {
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		m := map[string]any{}
		for _, c := range f.Columns() {
			switch col := c.(type) {
			case *j.FloatColumn:
				if v, ok := col.Get(r); ok {
					m[col.Name()] = v
				}
			case *j.IntColumn:
				if v, ok := col.Get(r); ok {
					m[col.Name()] = v
				}
			case *j.StringColumn:
				if v, ok := col.Get(r); ok {
					m[col.Name()] = v
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return w.Flush()
}
