package poweroff

import (
	"context"

	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// Worker is the goroutine running one Orchestrator.
type Worker struct {
	done chan struct{}
}

// Start runs o on a new goroutine and returns immediately. The run ignores
// cancellation of ctx and its result is only logged. Done lets the host
// process learn that the goroutine ended.
func Start(ctx context.Context, o *Orchestrator) *Worker {
	w := &Worker{
		done: make(chan struct{}),
	}

	ctx = context.WithoutCancel(logger.WithName(ctx, "worker"))

	go func() {
		defer close(w.done)

		// Errors are logged by the orchestrator; nobody waits for them.
		_ = o.Run(ctx)
	}()

	return w
}

// Done is closed when the worker goroutine exits.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}
