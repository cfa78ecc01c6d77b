package types

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies the result of processing one target.
type Outcome string

const (
	// OutcomeSuccess indicates the target was processed as intended.
	OutcomeSuccess Outcome = "Success"

	// OutcomeSkipped indicates the target was matched but deliberately not
	// acted on (dry-run, or an instance that was already stopped).
	OutcomeSkipped Outcome = "Skipped"

	// OutcomeWarning indicates the target was processed but ended in a
	// state worth flagging, such as a restart that timed out waiting.
	OutcomeWarning Outcome = "Warning"

	// OutcomeFailed indicates processing the target failed.
	OutcomeFailed Outcome = "Failed"
)

// TargetResult records the decision and outcome for one target.
type TargetResult struct {
	// Target identifier (service name, instance ID, snapshot ID, bucket name)
	Target string `json:"target" yaml:"target"`

	// Kind of cleanup resource, empty for service targets
	Kind ResourceKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Name of the resource when distinct from the identifier
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Action that was (or would be) applied
	Action Action `json:"action,omitempty" yaml:"action,omitempty"`

	// Outcome of processing this target
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Detail carries extra human-readable context, such as a final state
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Err holds the failure, nil otherwise
	Err error `json:"-" yaml:"-"`
}

// Error returns the failure message, empty when the target did not fail.
func (r TargetResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report collects per-target results for one run.
type Report struct {
	// RunID uniquely identifies this run
	RunID string `json:"runId" yaml:"runId"`

	// Mode the run executed under
	Mode RunMode `json:"mode" yaml:"mode"`

	// StartedAt is when the run began
	StartedAt time.Time `json:"startedAt" yaml:"startedAt"`

	// Results in processing order
	Results []TargetResult `json:"results" yaml:"results"`
}

// NewReport creates an empty report for a run in the given mode.
func NewReport(mode RunMode) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// Add appends a result to the report.
func (r *Report) Add(result TargetResult) {
	r.Results = append(r.Results, result)
}

// Count returns the number of results with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed reports whether any target failed.
func (r *Report) Failed() bool {
	return r.Count(OutcomeFailed) > 0
}
