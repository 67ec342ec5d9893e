package cli

import (
	"fmt"
	"io"

	"github.com/daybook-app/daybook-sync/internal/client/netmon"
	"github.com/daybook-app/daybook-sync/internal/client/storage"
	"github.com/daybook-app/daybook-sync/internal/client/sync"
)

// Cli wires the agent commands to the engine collaborators: the
// durable queue for captures, the orchestrator for passes and the
// monitor/runner pair for watch mode.
type Cli struct {
	queue   storage.QueueStorage
	service sync.Service
	monitor netmon.Monitor
	runner  *sync.Runner
	out     io.Writer
}

// New creates the command dispatcher. out receives all command output.
func New(queue storage.QueueStorage, service sync.Service, monitor netmon.Monitor, runner *sync.Runner, out io.Writer) *Cli {
	return &Cli{
		queue:   queue,
		service: service,
		monitor: monitor,
		runner:  runner,
		out:     out,
	}
}

func PrintUsage() {
	fmt.Println("Daybook Sync Agent")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  daybook-agent [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version                 Show version information")
	fmt.Println("  --server URL              Ingestion server URL (default: http://localhost:8080)")
	fmt.Println("  --data-dir PATH           Directory for the queue and state databases")
	fmt.Println("  --token TOKEN             Bearer token for the ingestion server")
	fmt.Println("  --auto-sync               Trigger passes on preferred connectivity (default: true)")
	fmt.Println("  --batch                   Upload attachment-free kinds through the batch endpoint")
	fmt.Println("  --log-level LEVEL         debug, info, warn or error (default: info)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <kind>              Queue a capture (note, emotion, chat, experience)")
	fmt.Println("  sync                    Run one synchronization pass now")
	fmt.Println("  status                  Show queue depth, connectivity and last success")
	fmt.Println("  retry --kind K --id ID  Requeue a dead-lettered entry")
	fmt.Println("  watch                   Run the auto-sync loop in the foreground")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  daybook-agent add note --body 'remember the milk'")
	fmt.Println("  daybook-agent add emotion --emotion joy --intensity 4")
	fmt.Println("  daybook-agent add experience --title 'Beach day' --photo beach.jpg --photo sunset.jpg")
	fmt.Println("  daybook-agent sync")
	fmt.Println("  daybook-agent retry --kind note --id b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  daybook-agent --server https://sync.example.com watch")
}
