package janitor

import "context"

// Level grades an Event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Event is a progress or statistics message emitted by a stage.
type Event struct {
	Stage   string
	Level   Level
	Message string
	Fields  map[string]any
}

// Observer receives events. Implementations must not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (fn ObserverFunc) Observe(e Event) { fn(e) }

// Discard drops every event.
var Discard Observer = ObserverFunc(func(Event) {})

type observerKey struct{}

// WithObserver returns a context carrying o for transforms to report through.
func WithObserver(ctx context.Context, o Observer) context.Context {
	return context.WithValue(ctx, observerKey{}, o)
}

// ObserverFrom returns the context's observer, or Discard.
func ObserverFrom(ctx context.Context) Observer {
	if o, ok := ctx.Value(observerKey{}).(Observer); ok && o != nil {
		return o
	}
	return Discard
}

// Emit sends e to the context's observer.
func Emit(ctx context.Context, e Event) {
	ObserverFrom(ctx).Observe(e)
}

// Recorder keeps every event it observes, in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(e Event) { r.Events = append(r.Events, e) }

// ByStage returns the recorded events for one stage.
func (r *Recorder) ByStage(stage string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}
