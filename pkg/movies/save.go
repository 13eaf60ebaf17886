package movies

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	csvio "github.com/wdm0006/moviejanitor/pkg/io/csvio"
	jsonlio "github.com/wdm0006/moviejanitor/pkg/io/jsonlio"
	parquetio "github.com/wdm0006/moviejanitor/pkg/io/parquetio"
	xlsxio "github.com/wdm0006/moviejanitor/pkg/io/xlsxio"
	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Output formats.
const (
	FormatCSV     = "csv"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"
)

// ErrNoTable is returned when a stage is handed the absent-table sentinel.
var ErrNoTable = errors.New("no table")

// Save writes f to cfg.OutputDir/cfg.OutputName, creating the directory as
// needed, and returns the path written.
func Save(ctx context.Context, f *j.Frame, cfg Config) (string, error) {
	if f == nil {
		return "", ErrNoTable
	}
	format, err := formatFor(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, cfg.OutputName)
	switch format {
	case FormatCSV:
		opt := csvio.WriterOptions{BOM: cfg.Output.BOM}
		if d := []rune(cfg.Output.Delimiter); len(d) > 0 {
			opt.Delimiter = d[0]
		}
		err = csvio.WriteAll(path, f, opt)
	case FormatJSONL:
		err = jsonlio.WriteAll(path, f)
	case FormatParquet:
		err = parquetio.WriteAll(path, f)
	case FormatXLSX:
		err = xlsxio.WriteAll(path, f, "movies")
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	j.Emit(ctx, j.Event{Stage: "save", Level: j.LevelInfo, Message: "table saved", Fields: map[string]any{"path": path, "rows": f.Rows(), "format": format}})
	return path, nil
}

// formatFor returns the configured format, falling back to the output
// name's extension (ignoring a trailing .gz) and then csv.
func formatFor(cfg Config) (string, error) {
	if cfg.Output.Format != "" {
		switch cfg.Output.Format {
		case FormatCSV, FormatJSONL, FormatParquet, FormatXLSX:
			return cfg.Output.Format, nil
		}
		return "", fmt.Errorf("output format %q not supported", cfg.Output.Format)
	}
	name := strings.TrimSuffix(strings.ToLower(cfg.OutputName), ".gz")
	switch filepath.Ext(name) {
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".parquet":
		return FormatParquet, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return FormatCSV, nil
}
