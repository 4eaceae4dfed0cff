// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/adhocore/gronx"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Runner performs one digest run.
type Runner interface {
	Run(ctx context.Context, cfg types.PipelineConfig, w io.Writer) (Report, error)
}

// Scheduler runs a Runner immediately and then again at every tick of a cron
// expression. It wakes every poll interval to check whether a tick is due,
// so runs may start up to one interval late.
type Scheduler struct {
	Runner Runner

	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Loop runs until ctx is cancelled, which is not an error. A missing
// recipient ends the loop with ErrMissingRecipient.
func (s *Scheduler) Loop(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	expr := cfg.Schedule.Cron
	poll := cfg.Schedule.PollInterval
	if poll <= 0 {
		poll = time.Minute
	}

	next, err := gronx.NextTickAfter(expr, s.now(), false)
	if err != nil {
		return fmt.Errorf("parsing schedule %q: %w", expr, err)
	}

	if err := s.runOnce(ctx, cfg, w); err != nil {
		return err
	}
	fmt.Fprintf(w, "next run: %s\n", next.Format(time.RFC1123))

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "schedule stopped")
			return nil
		case <-ticker.C:
		}

		now := s.now()
		if now.Before(next) {
			continue
		}
		if err := s.runOnce(ctx, cfg, w); err != nil {
			return err
		}
		if next, err = gronx.NextTickAfter(expr, s.now(), false); err != nil {
			return fmt.Errorf("parsing schedule %q: %w", expr, err)
		}
		fmt.Fprintf(w, "next run: %s\n", next.Format(time.RFC1123))
	}
}

func (s *Scheduler) runOnce(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	_, err := s.Runner.Run(ctx, cfg, w)
	switch {
	case errors.Is(err, ErrMissingRecipient):
		return err
	case ctx.Err() != nil:
		return nil
	case err != nil:
		fmt.Fprintf(w, "warning: run failed: %v\n", err)
	}
	return nil
}
