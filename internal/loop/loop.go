// Package loop provides the tick sources that drive the backdrop frame
// function, decoupling the simulation from any one scheduler.
package loop

import (
	"context"
	"time"
)

// Frame renders one frame. A non-nil error stops the source.
type Frame func() error

// Source calls frame once per tick until it is done, the context is
// cancelled, or frame returns an error.
type Source interface {
	Run(ctx context.Context, frame Frame) error
}

// Frames is a Source that calls frame Count times back to back.
type Frames struct {
	Count int
}

func (s Frames) Run(ctx context.Context, frame Frame) error {
	for i := 0; i < s.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

// Interval is a Source that calls frame once per Period. A zero Limit
// runs until the context is cancelled.
type Interval struct {
	Period time.Duration
	Limit  int
}

func (s Interval) Run(ctx context.Context, frame Frame) error {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()

	for n := 0; s.Limit == 0 || n < s.Limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

// PeriodForTPS returns the tick period for a rate in ticks per second.
func PeriodForTPS(tps int) time.Duration {
	if tps <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(tps)
}
