package runner

import (
	"context"
	"time"

	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// Watch runs fn immediately and then on every tick until the context is
// cancelled. Individual run errors are logged and do not stop the loop.
func Watch(ctx context.Context, logger *util.Logger, interval time.Duration, fn func() error) {
	if err := fn(); err != nil {
		logger.PrintError("Error: %s", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(); err != nil {
				logger.PrintError("Error: %s", err)
			}
		}
	}
}
