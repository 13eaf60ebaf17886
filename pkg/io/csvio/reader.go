package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	iox "github.com/wdm0006/moviejanitor/pkg/io/ioutils"
	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// ErrEmpty reports an input without even a header record.
var ErrEmpty = errors.New("csv: empty input")

// DefaultNullValues are the cell texts read as missing.
var DefaultNullValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "NULL", "null", "None", "#N/A", "#NA", "<NA>"}

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune              // 0 = sniff, default ','
	SampleRows int               // for inference; default 100, negative samples every row
	Strict     bool              // if true, error on short/long records
	NullValues []string          // nil = DefaultNullValues
	Kinds      map[string]j.Kind // declared kinds override inference
}

type Reader struct {
	r     *csv.Reader
	opt   ReaderOptions
	buf   [][]string
	nulls map[string]struct{}
	// repair/warning counters
	shortRecords int
	longRecords  int
	badCells     int
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Open opens a CSV file (plain or gzip, "-" for stdin) and returns a Reader
// together with the closer for the underlying file.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	if opt.Delimiter == 0 && path != "-" && path != "" {
		if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
			opt.Delimiter = d
			r, c, err := open(path, opt)
			if err == nil {
				r.r.LazyQuotes = lazy
			}
			return r, c, err
		}
	}
	return open(path, opt)
}

func open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
// A leading byte order mark is consumed and UTF-16 input is decoded.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	rr := csv.NewReader(transform.NewReader(r, dec))
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	if !opt.Strict {
		rr.FieldsPerRecord = -1
	}
	rr.ReuseRecord = true
	nv := opt.NullValues
	if nv == nil {
		nv = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(nv))
	for _, v := range nv {
		nulls[v] = struct{}{}
	}
	return &Reader{r: rr, opt: opt, nulls: nulls}
}

// InferSchema reads header (if present) and samples rows to determine column kinds.
// A header-only input yields a schema and no buffered rows.
func (r *Reader) InferSchema() (j.Schema, []string, error) {
	var names []string
	// Peek first record to get column count and optionally header
	rec, err := r.r.Read()
	if err == io.EOF {
		return j.Schema{}, nil, ErrEmpty
	}
	if err != nil {
		return j.Schema{}, nil, err
	}
	rec = append([]string(nil), rec...)
	var sample [][]string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		}
		names = uniqueNames(names)
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		sample = append(sample, rec)
	}

	max := r.opt.SampleRows
	if max == 0 {
		max = 100
	}
	for max < 0 || len(sample) < max {
		rr, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return j.Schema{}, nil, err
		}
		sample = append(sample, append([]string(nil), rr...))
	}

	kinds := r.inferKinds(sample, len(names))
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(names))}
	for i := range names {
		k := kinds[i]
		if dk, ok := r.opt.Kinds[names[i]]; ok {
			k = dk
		}
		schema.Columns[i] = j.ColumnSchema{Name: names[i], Type: k, Nullable: true}
	}
	// retain sampled rows for subsequent ReadAll
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

// ReadAll loads the rest of the CSV into a Frame.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	// drain buffered records from inference (if any)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// appendRecord appends a null row then sets the non-missing values.
func (r *Reader) appendRecord(f *j.Frame, schema j.Schema, rec []string) error {
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	}
	if len(rec) < len(schema.Columns) {
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			break
		}
		raw := strings.ToValidUTF8(rec[i], "?")
		val := strings.TrimSpace(raw)
		if r.isNull(val) {
			continue
		}
		switch cs.Type {
		case j.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			} else {
				r.badCells++
			}
		case j.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			} else if x, err := strconv.ParseFloat(val, 64); err == nil && x == float64(int64(x)) {
				_ = f.SetCell(row, cs.Name, int64(x))
			} else {
				r.badCells++
			}
		default:
			// text keeps its surrounding whitespace; normalization is a pipeline step
			_ = f.SetCell(row, cs.Name, raw)
		}
	}
	return nil
}

// uniqueNames renames repeated header names to name.1, name.2, ... skipping
// any suffix already taken by another column.
func uniqueNames(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		k, dup := seen[n]
		seen[n] = k + 1
		if !dup {
			out[i] = n
			continue
		}
		cand := n + "." + strconv.Itoa(k)
		for taken[cand] {
			k++
			cand = n + "." + strconv.Itoa(k)
		}
		seen[n] = k + 1
		taken[cand] = true
		out[i] = cand
	}
	return out
}

func (r *Reader) isNull(v string) bool {
	_, ok := r.nulls[v]
	return ok
}

func (r *Reader) inferKinds(rows [][]string, ncol int) []j.Kind {
	kinds := make([]j.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if r.isNull(v) {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					// digits beyond int64 range are kept as float
					if _, err := strconv.ParseInt(v, 10, 64); err == nil {
						integer++
					}
				}
			} else {
				str++
			}
		}
		switch {
		case num > 0 && str == 0 && integer == num:
			kinds[c] = j.KindInt
		case num > 0 && str == 0:
			kinds[c] = j.KindFloat
		default:
			kinds[c] = j.KindString
		}
	}
	return kinds
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	// only the header line decides, so quoted commas in data rows don't skew it
	if nl := strings.IndexByte(string(sample), '\n'); nl > 0 {
		sample = sample[:nl]
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := 0
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	// an odd number of quotes in the header suggests stray quotes in the data
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	return rune(best), quoteCount%2 != 0, nil
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	if r.badCells > 0 {
		parts = append(parts, fmt.Sprintf("unparsed_cells=%d", r.badCells))
	}
	return strings.Join(parts, ", ")
}
