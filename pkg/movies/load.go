package movies

import (
	"context"
	"fmt"

	csvio "github.com/wdm0006/moviejanitor/pkg/io/csvio"
	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// LoadError reports why the input table could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads cfg.InputPath into a frame. Declared numeric columns and the
// required column load as float and the title column as text; other kinds
// are inferred from every row. On failure Load emits an error event and
// returns a nil frame with a *LoadError.
func Load(ctx context.Context, cfg Config) (*j.Frame, error) {
	f, warn, err := load(cfg)
	if err != nil {
		j.Emit(ctx, j.Event{Stage: "load", Level: j.LevelError, Message: "load failed", Fields: map[string]any{"path": cfg.InputPath, "error": err.Error()}})
		return nil, &LoadError{Path: cfg.InputPath, Err: err}
	}
	if warn != "" {
		j.Emit(ctx, j.Event{Stage: "load", Level: j.LevelWarn, Message: "input repaired", Fields: map[string]any{"path": cfg.InputPath, "repairs": warn}})
	}
	j.Emit(ctx, j.Event{Stage: "load", Level: j.LevelInfo, Message: "table loaded", Fields: map[string]any{"path": cfg.InputPath, "rows": f.Rows(), "columns": f.Cols()}})
	return f, nil
}

func load(cfg Config) (*j.Frame, string, error) {
	rdr, closer, err := csvio.Open(cfg.InputPath, csvio.ReaderOptions{
		HasHeader:  true,
		SampleRows: -1,
		Kinds:      declaredKinds(cfg),
	})
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = closer.Close() }()
	schema, _, err := rdr.InferSchema()
	if err != nil {
		return nil, "", err
	}
	f, err := rdr.ReadAll(schema)
	if err != nil {
		return nil, "", err
	}
	return f, rdr.Warnings(), nil
}

func declaredKinds(cfg Config) map[string]j.Kind {
	kinds := make(map[string]j.Kind, len(cfg.NumericColumns)+2)
	for _, name := range cfg.NumericColumns {
		kinds[name] = j.KindFloat
	}
	if cfg.RequiredColumn != "" {
		kinds[cfg.RequiredColumn] = j.KindFloat
	}
	if cfg.TitleColumn != "" {
		kinds[cfg.TitleColumn] = j.KindString
	}
	return kinds
}
