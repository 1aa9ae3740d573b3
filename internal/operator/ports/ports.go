// Package ports defines the collaborators the operator engine depends on.
// Implementations live outside the engine so tests can swap them freely.
package ports

import (
	"context"

	"opinfo/internal/operator/models"
)

// Source hands the engine already-parsed operator record sets.
type Source interface {
	// Load returns every record set the source could obtain. Sets that fail
	// to load are skipped by the source; an error means nothing usable came back.
	Load(ctx context.Context) ([]models.RecordSet, error)
}

// Dispatcher defers work to the embedding daemon's task loop.
type Dispatcher interface {
	// PostTask enqueues task for later execution. It must not run task inline.
	PostTask(task func())
}

// Observer is told that the operator profile may have changed. The event
// carries no payload; observers read the engine accessors.
type Observer interface {
	OnOperatorChanged()
}
