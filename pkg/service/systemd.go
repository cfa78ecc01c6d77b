package service

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rzbill/opsweep/pkg/types"
)

// SystemdController controls services through systemctl.
type SystemdController struct {
	// Bin is the systemctl binary, overridable for tests
	Bin string
}

// NewSystemdController creates a Controller backed by systemctl.
func NewSystemdController() *SystemdController {
	return &SystemdController{Bin: "systemctl"}
}

// Status queries the unit's load and active state.
func (c *SystemdController) Status(ctx context.Context, name string) (types.ServiceState, error) {
	out, err := exec.CommandContext(ctx, c.Bin, "show", "--property=LoadState,ActiveState", name).Output()
	if err != nil {
		return types.ServiceStateUnknown, fmt.Errorf("query state of %s: %w", name, err)
	}

	loadState, activeState := parseShowOutput(string(out))
	if loadState == "not-found" {
		return types.ServiceStateUnknown, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return mapActiveState(activeState), nil
}

// Stop issues systemctl stop.
func (c *SystemdController) Stop(ctx context.Context, name string) error {
	if out, err := exec.CommandContext(ctx, c.Bin, "stop", name).CombinedOutput(); err != nil {
		return fmt.Errorf("stop %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Start issues systemctl start.
func (c *SystemdController) Start(ctx context.Context, name string) error {
	if out, err := exec.CommandContext(ctx, c.Bin, "start", name).CombinedOutput(); err != nil {
		return fmt.Errorf("start %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// parseShowOutput extracts LoadState and ActiveState from systemctl show
// key=value output.
func parseShowOutput(out string) (loadState, activeState string) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "LoadState="):
			loadState = strings.TrimPrefix(line, "LoadState=")
		case strings.HasPrefix(line, "ActiveState="):
			activeState = strings.TrimPrefix(line, "ActiveState=")
		}
	}
	return loadState, activeState
}

// mapActiveState maps systemd's ActiveState vocabulary onto ServiceState.
func mapActiveState(state string) types.ServiceState {
	switch state {
	case "active":
		return types.ServiceStateRunning
	case "inactive":
		return types.ServiceStateStopped
	case "failed":
		return types.ServiceStateFailed
	case "activating", "deactivating", "reloading":
		return types.ServiceStateTransitioning
	default:
		return types.ServiceStateUnknown
	}
}
