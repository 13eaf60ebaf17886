package report

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

func TestLogrusObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.InfoLevel)
	obs := NewLogrus(logger)

	obs.Observe(j.Event{Stage: "impute_median", Level: j.LevelDebug, Message: "column filled"})
	obs.Observe(j.Event{Stage: "impute_median", Level: j.LevelWarn, Message: "column has no observed values; left missing", Fields: map[string]any{"column": "gross"}})

	require.Len(t, hook.AllEntries(), 1)
	e := hook.LastEntry()
	assert.Equal(t, log.WarnLevel, e.Level)
	assert.Equal(t, "gross", e.Data["column"])
	assert.Equal(t, "impute_median", e.Data["stage"])

	logger.SetLevel(log.DebugLevel)
	obs.Observe(j.Event{Stage: "trim", Level: j.LevelDebug, Message: "stage start"})
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, log.InfoLevel, Level(j.LevelInfo))
	assert.Equal(t, log.ErrorLevel, Level(j.LevelError))
}

func TestNilLoggerUsesStandard(t *testing.T) {
	std := log.StandardLogger()
	out := std.Out
	std.SetOutput(io.Discard)
	defer std.SetOutput(out)
	assert.Same(t, std, NewLogrus(nil).Logger)
}
