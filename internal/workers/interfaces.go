// Package workers runs the server's background jobs next to the transport
// servers. Every worker stops when its context is cancelled.
package workers

import "context"

// Worker is a long-running background job. Run blocks until ctx is done
// and the worker has finished its outstanding work.
type Worker interface {
	Run(ctx context.Context)
}
