package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func TestEveryRunsImmediatelyAndRepeats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32

	done := make(chan struct{})
	go func() {
		defer close(done)
		Every(ctx, 10*time.Millisecond, "tick", func(context.Context) error {
			if runs.Add(1) == 2 {
				return errors.New("transient")
			}
			return nil
		}, slog.New(slog.DiscardHandler))
	}()

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if runs.Load() < 3 {
		t.Fatalf("task ran %d times, errors should not stop the loop", runs.Load())
	}
}

func TestEveryStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finished := make(chan struct{})
	go func() {
		Every(ctx, time.Hour, "noop", func(context.Context) error { return nil }, nil)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Every did not return after cancel")
	}
}
