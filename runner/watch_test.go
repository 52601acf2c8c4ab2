package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// A failing run must not stop the loop; the next tick runs again.
func TestWatchContinuesAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := util.NewLogger(false, true)

	runs := 0
	Watch(ctx, logger, time.Millisecond, func() error {
		runs++
		if runs >= 3 {
			cancel()
		}
		return errors.New("connection refused")
	})

	if runs < 3 {
		t.Errorf("got %d runs, want at least 3", runs)
	}
}

func TestWatchStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := util.NewLogger(false, true)

	runs := 0
	done := make(chan struct{})
	go func() {
		Watch(ctx, logger, time.Millisecond, func() error {
			runs++
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return on cancelled context")
	}
	if runs != 1 {
		t.Errorf("got %d runs, want exactly the initial one", runs)
	}
}
