package cli

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook-sync/internal/models"
)

// runStatus prints the point-in-time view of the engine: connectivity,
// queue depth per kind, dead-letters and the last successful pass.
func (c *Cli) runStatus(ctx context.Context) error {
	status, err := c.service.CurrentStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync status: %w", err)
	}

	fmt.Fprintf(c.out, "Network:    %s\n", c.monitor.Current())

	if status.InProgress {
		fmt.Fprintln(c.out, "Sync:       pass in progress")
	} else {
		fmt.Fprintln(c.out, "Sync:       idle")
	}

	autoSync := "off"
	if status.AutoSync {
		autoSync = "on"
	}
	fmt.Fprintf(c.out, "Auto-sync:  %s\n", autoSync)

	if status.LastSuccessAt != nil {
		fmt.Fprintf(c.out, "Last sync:  %s\n", status.LastSuccessAt.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(c.out, "Last sync:  never")
	}

	fmt.Fprintf(c.out, "Pending:    %d\n", status.TotalPending())
	for _, kind := range models.AllKinds() {
		pending := status.Pending[kind]
		dead := status.DeadLettered[kind]
		if pending == 0 && dead == 0 {
			continue
		}
		line := fmt.Sprintf("  %-12s %d", kind, pending)
		if dead > 0 {
			line += fmt.Sprintf(" (+%d dead-lettered)", dead)
		}
		fmt.Fprintln(c.out, line)
	}

	return nil
}
