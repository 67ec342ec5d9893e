package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybook-app/daybook-sync/internal/client/sync"
)

// runSync executes one manual pass and prints its summary. A pass
// already running is informational, not an error.
func (c *Cli) runSync(ctx context.Context) error {
	result, err := c.service.RunPass(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrPassInProgress) {
			fmt.Fprintln(c.out, "A sync pass is already running")
			return nil
		}
		return fmt.Errorf("sync pass failed: %w", err)
	}

	fmt.Fprintf(c.out, "Sync pass finished: %d uploaded, %d failed, %d skipped\n",
		result.Uploaded, result.Failed, result.Skipped)

	if result.Failed > 0 {
		fmt.Fprintln(c.out, "Failed entries stay queued and will be retried")
	}

	return nil
}
