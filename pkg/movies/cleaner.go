package movies

import (
	"context"
	"time"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
	"github.com/wdm0006/moviejanitor/pkg/profile"
	"github.com/wdm0006/moviejanitor/pkg/transform/dedup"
	"github.com/wdm0006/moviejanitor/pkg/transform/derive"
	imp "github.com/wdm0006/moviejanitor/pkg/transform/impute"
	outl "github.com/wdm0006/moviejanitor/pkg/transform/outliers"
	std "github.com/wdm0006/moviejanitor/pkg/transform/standardize"
)

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithObserver routes pipeline events to o.
func WithObserver(o j.Observer) Option {
	return func(c *Cleaner) {
		if o != nil {
			c.obs = o
		}
	}
}

// WithClock sets the clock used when Config.ReferenceYear is zero.
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) {
		if now != nil {
			c.now = now
		}
	}
}

// Cleaner runs the full movie cleaning pipeline.
type Cleaner struct {
	cfg Config
	obs j.Observer
	now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	Path    string
	RowsIn  int
	RowsOut int
}

func New(cfg Config, opts ...Option) *Cleaner {
	c := &Cleaner{cfg: cfg, obs: j.Discard, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cleaner) Config() Config { return c.cfg }

// ReferenceYear is the year movie_age is measured from.
func (c *Cleaner) ReferenceYear() int {
	if c.cfg.ReferenceYear != 0 {
		return c.cfg.ReferenceYear
	}
	return c.now().Year()
}

// Pipeline builds the cleaning stages in order: title trim, deduplication,
// missing report, required-column drop, numeric and categorical imputation,
// feature derivation and the duration filter.
func (c *Cleaner) Pipeline() *j.Pipeline {
	cfg := c.cfg
	p := j.NewPipeline().Observe(c.obs)
	p.Add(&std.Trim{Column: cfg.TitleColumn, Coerce: true})
	p.Add(&dedup.Exact{})
	p.Add(&profile.Missing{})
	p.Add(&imp.DropMissing{Column: cfg.RequiredColumn})
	for _, name := range cfg.NumericColumns {
		if cfg.NumericStrategy == StrategyMean {
			p.Add(&imp.Mean{Column: name})
		} else {
			p.Add(&imp.Median{Column: name})
		}
	}
	for _, name := range cfg.CategoricalColumns {
		p.Add(&imp.Mode{Column: name, Placeholder: cfg.Placeholder})
	}
	p.Add(&derive.Age{Column: cfg.ReleaseYearColumn, ReferenceYear: c.ReferenceYear()})
	p.Add(&derive.ROI{Revenue: cfg.RevenueColumn, Budget: cfg.BudgetColumn})
	p.Add(&outl.Filter{
		Column: cfg.DurationColumn,
		Min:    outl.Bound(cfg.DurationBounds.Min),
		Max:    outl.Bound(cfg.DurationBounds.Max),
	})
	return p
}

// Clean applies the pipeline to a loaded frame.
func (c *Cleaner) Clean(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	if f == nil {
		return nil, ErrNoTable
	}
	return c.Pipeline().Run(ctx, f)
}

// Run loads the input, cleans it and saves the result.
func (c *Cleaner) Run(ctx context.Context) (Result, error) {
	if err := c.cfg.Validate(); err != nil {
		return Result{}, err
	}
	ctx = j.WithObserver(ctx, c.obs)
	f, err := Load(ctx, c.cfg)
	if err != nil {
		return Result{}, err
	}
	res := Result{RowsIn: f.Rows()}
	out, err := c.Clean(ctx, f)
	if err != nil {
		return res, err
	}
	res.RowsOut = out.Rows()
	if res.Path, err = Save(ctx, out, c.cfg); err != nil {
		return res, err
	}
	return res, nil
}
