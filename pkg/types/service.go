package types

// ServiceTarget identifies one OS service subject to a restart.
type ServiceTarget struct {
	// Name of the service as known to the service manager
	Name string `json:"name" yaml:"name"`
}

// ServiceState represents the observed state of an OS service.
type ServiceState string

const (
	// ServiceStateUnknown indicates the state could not be determined.
	ServiceStateUnknown ServiceState = "Unknown"

	// ServiceStateRunning indicates the service is active.
	ServiceStateRunning ServiceState = "Running"

	// ServiceStateStopped indicates the service is inactive.
	ServiceStateStopped ServiceState = "Stopped"

	// ServiceStateTransitioning indicates the service is starting or stopping.
	ServiceStateTransitioning ServiceState = "Transitioning"

	// ServiceStateFailed indicates the service manager reports a failure.
	ServiceStateFailed ServiceState = "Failed"
)

// String returns the string representation of the service state.
func (s ServiceState) String() string {
	return string(s)
}
