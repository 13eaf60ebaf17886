package janitor

import (
	"context"
	"fmt"
)

// Transform is a mutation or filter applied to a Frame. A transform may
// modify f in place or return a new frame.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps    []Transform
	observer Observer
}

func NewPipeline() *Pipeline { return &Pipeline{observer: Discard} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Observe sets the observer that receives stage events.
func (p *Pipeline) Observe(o Observer) *Pipeline {
	if o == nil {
		o = Discard
	}
	p.observer = o
	return p
}

// Steps returns the transform names in execution order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	ctx = WithObserver(ctx, p.observer)
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		before := cur.Rows()
		p.observer.Observe(Event{Stage: t.Name(), Level: LevelDebug, Message: "stage start", Fields: map[string]any{"rows": before}})
		out, err := t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		cur = out
		p.observer.Observe(Event{
			Stage:   t.Name(),
			Level:   LevelDebug,
			Message: "stage done",
			Fields:  map[string]any{"rows_in": before, "rows_out": cur.Rows()},
		})
	}
	return cur, nil
}
