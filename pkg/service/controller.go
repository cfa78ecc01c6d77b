// Package service drives OS services through a stop-wait-start restart
// cycle with deterministic timeout behavior.
package service

import (
	"context"
	"errors"

	"github.com/rzbill/opsweep/pkg/types"
)

// ErrNotFound is returned by a Controller when the named service is not
// known to the service manager.
var ErrNotFound = errors.New("service: not found")

// Controller is the service-control collaborator. Implementations talk to
// the host's service manager; none of the calls retry internally.
type Controller interface {
	// Status returns the current state of the named service.
	Status(ctx context.Context, name string) (types.ServiceState, error)

	// Stop issues a stop for the named service without waiting.
	Stop(ctx context.Context, name string) error

	// Start issues a start for the named service without waiting.
	Start(ctx context.Context, name string) error
}
