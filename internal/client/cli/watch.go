package cli

import (
	"context"
	"errors"
	"fmt"
)

// runWatch runs the auto-sync loop in the foreground until the context
// is canceled or the monitor closes.
func (c *Cli) runWatch(ctx context.Context) error {
	fmt.Fprintln(c.out, "Watching connectivity, passes trigger on preferred networks (Ctrl+C to stop)")

	err := c.runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch loop failed: %w", err)
	}

	fmt.Fprintln(c.out, "Stopped")
	return nil
}
