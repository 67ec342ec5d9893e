package cli

import (
	"context"
	"fmt"
)

// Run dispatches one agent command. Unknown commands are an error; the
// caller decides the exit code.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return c.runAdd(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "status":
		return c.runStatus(ctx)
	case "retry":
		return c.runRetry(ctx, args)
	case "watch":
		return c.runWatch(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
