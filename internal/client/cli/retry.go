package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/daybook-app/daybook-sync/internal/client/storage"
	"github.com/daybook-app/daybook-sync/internal/models"
)

// runRetry rescues a dead-lettered entry: the entry goes back to a
// fresh pending state and the next pass attempts it again.
func (c *Cli) runRetry(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	kindStr := fs.String("kind", "", "record kind of the entry (required)")
	id := fs.String("id", "", "entry id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kind := models.RecordKind(*kindStr)
	if !kind.Valid() {
		return fmt.Errorf("unknown record kind: %q", *kindStr)
	}
	if *id == "" {
		return fmt.Errorf("entry id is required")
	}

	if err := c.queue.Requeue(ctx, kind, *id); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fmt.Errorf("no queued %s entry with id %s", kind, *id)
		}
		return fmt.Errorf("failed to requeue entry: %w", err)
	}

	fmt.Fprintf(c.out, "Requeued %s %s\n", kind, *id)
	return nil
}
