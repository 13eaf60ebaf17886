package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/wdm0006/moviejanitor/pkg/movies"
)

// runner serializes pipeline runs triggered by the CLI, file events and
// the scheduler.
type runner struct {
	mu      sync.Mutex
	cleaner *movies.Cleaner
	out     io.Writer
}

func (r *runner) run(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := r.cleaner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, summarize(res))
	return nil
}

// serve blocks until ctx is done, rerunning on input writes and/or the
// cron schedule.
func (r *runner) serve(ctx context.Context, watch bool, spec string) error {
	if spec != "" {
		c := cron.New()
		if _, err := c.AddFunc(spec, func() { r.logged(ctx) }); err != nil {
			return fmt.Errorf("schedule %q: %w", spec, err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		log.WithField("schedule", spec).Info("scheduler started")
	}
	if !watch {
		<-ctx.Done()
		return nil
	}
	return r.watch(ctx)
}

func (r *runner) watch(ctx context.Context) error {
	input, err := filepath.Abs(r.cleaner.Config().InputPath)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(input)); err != nil {
		return err
	}
	log.WithField("path", input).Info("watching input")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !triggers(ev, input) {
				continue
			}
			log.WithField("op", ev.Op.String()).Debug("input changed")
			r.logged(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// triggers reports whether ev rewrote the input file.
func triggers(ev fsnotify.Event, input string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != input {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

func (r *runner) logged(ctx context.Context) {
	if err := r.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err)
	}
}
