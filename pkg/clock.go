package pkg

import (
	"context"
	"fmt"
	"time"
)

// Clock calls a frame function at a fixed rate.
type Clock struct {
	Interval time.Duration
	Frames   int
}

func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = 60
	}

	return &Clock{Interval: time.Second / time.Duration(fps)}
}

func (cl *Clock) String() string {
	return fmt.Sprintf("%d frames @ %s", cl.Frames, cl.Interval)
}

// Run blocks until ctx is done or frame returns false.
func (cl *Clock) Run(ctx context.Context, frame func() bool) {
	tick := time.NewTicker(cl.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			cl.Frames++
			if !frame() {
				return
			}
		}
	}
}
