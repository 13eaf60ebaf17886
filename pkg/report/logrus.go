// Package report delivers pipeline events to logrus.
package report

import (
	log "github.com/sirupsen/logrus"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// Logrus is a janitor.Observer that logs each event through a logrus logger.
type Logrus struct {
	Logger *log.Logger
}

// NewLogrus returns an observer writing to l, or to the standard logger
// when l is nil.
func NewLogrus(l *log.Logger) *Logrus {
	if l == nil {
		l = log.StandardLogger()
	}
	return &Logrus{Logger: l}
}

func (o *Logrus) Observe(e j.Event) {
	fields := make(log.Fields, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields["stage"] = e.Stage
	o.Logger.WithFields(fields).Log(Level(e.Level), e.Message)
}

// Level maps an event level onto logrus.
func Level(l j.Level) log.Level {
	switch l {
	case j.LevelDebug:
		return log.DebugLevel
	case j.LevelInfo:
		return log.InfoLevel
	case j.LevelWarn:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
