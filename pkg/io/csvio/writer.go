package csvio

import (
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	iox "github.com/wdm0006/moviejanitor/pkg/io/ioutils"
	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

type WriterOptions struct {
	Delimiter rune // default ','
	BOM       bool // prefix output with a UTF-8 byte order mark
}

// WriteAll writes a Frame to a CSV file with headers. Paths ending in .gz
// are gzip compressed.
func WriteAll(path string, f *j.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as UTF-8 CSV onto w. The header is written even when the
// frame has no rows; null cells are empty and invalid UTF-8 is replaced.
func Write(w io.Writer, f *j.Frame, opt WriterOptions) error {
	enc := unicode.UTF8.NewEncoder()
	if opt.BOM {
		enc = unicode.UTF8BOM.NewEncoder()
	}
	tw := transform.NewWriter(w, enc)
	cw := csv.NewWriter(tw)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}

	// header
	if err := cw.Write(f.Schema().Names()); err != nil {
		return err
	}

	// rows
	cols := f.Columns()
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			v, _ := col.Text(r)
			row[c] = strings.ToValidUTF8(v, "\uFFFD")
		}
		if len(row) == 1 && row[0] == "" {
			// a bare empty line would be skipped on read; quote the empty field
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(tw, emptyRecord(cw)); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

func emptyRecord(cw *csv.Writer) string {
	if cw.UseCRLF {
		return "\"\"\r\n"
	}
	return "\"\"\n"
}
