package realtime

import (
	"math"
	"strings"
)

// QueryState is the canonical progress state of a verification query.
// Every backend vocabulary normalizes into one of these members before
// reaching presentation logic.
type QueryState string

const (
	// StatePending means the query is queued and no pipeline step has run yet
	StatePending QueryState = "pending"
	// StatePlanning means the plan step is executing
	StatePlanning QueryState = "planning"
	// StateFetching means evidence retrieval is executing
	StateFetching QueryState = "fetching"
	// StateExecuting means the main pipeline step is executing
	StateExecuting QueryState = "executing"
	// StateValidating means fact validation is executing
	StateValidating QueryState = "validating"
	// StateDebating means the debate step is executing
	StateDebating QueryState = "debating"
	// StateCompleted means the query finished successfully
	StateCompleted QueryState = "completed"
	// StateFailed means the query finished with an error
	StateFailed QueryState = "failed"
)

// States returns every member of the canonical enumeration
func States() []QueryState {
	return []QueryState{
		StatePending,
		StatePlanning,
		StateFetching,
		StateExecuting,
		StateValidating,
		StateDebating,
		StateCompleted,
		StateFailed,
	}
}

// Terminal reports whether the state is final
func (s QueryState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// stepStates maps every known backend step token (upper-cased) to its
// canonical state. Lookup is case-insensitive.
var stepStates = map[string]QueryState{
	"PENDING":    StatePending,
	"QUEUED":     StatePending,
	"PLAN":       StatePlanning,
	"PLANNING":   StatePlanning,
	"FETCH":      StateFetching,
	"FETCHING":   StateFetching,
	"RETRIEVE":   StateFetching,
	"EXECUTE":    StateExecuting,
	"EXECUTING":  StateExecuting,
	"RUN":        StateExecuting,
	"VALIDATE":   StateValidating,
	"VALIDATING": StateValidating,
	"VERIFY":     StateValidating,
	"DEBATE":     StateDebating,
	"DEBATING":   StateDebating,
}

// StepState resolves a backend step token to its canonical state
func StepState(step string) (QueryState, bool) {
	state, ok := stepStates[strings.ToUpper(strings.TrimSpace(step))]
	return state, ok
}

// RawStatus carries the loosely-typed status fields the backend emits.
// Any subset of fields may be present; fields may appear at the top level
// of a frame or nested under its data object.
type RawStatus struct {
	Status      string   `json:"status,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	CurrentStep string   `json:"current_step,omitempty"`
	CurrentNode string   `json:"current_node,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// step returns whichever step field the backend populated
func (r RawStatus) step() string {
	if r.CurrentStep != "" {
		return r.CurrentStep
	}
	return r.CurrentNode
}

// merge overlays the fields present in other on top of r
func (r RawStatus) merge(other RawStatus) RawStatus {
	out := r
	if other.Status != "" {
		out.Status = other.Status
	}
	if other.Progress != nil {
		out.Progress = other.Progress
	}
	if other.CurrentStep != "" {
		out.CurrentStep = other.CurrentStep
	}
	if other.CurrentNode != "" {
		out.CurrentNode = other.CurrentNode
	}
	if other.Error != "" {
		out.Error = other.Error
	}
	return out
}

// QueryStatus is the canonical, consumer-facing status record
type QueryStatus struct {
	QueryID  string     `json:"query_id"`
	State    QueryState `json:"state"`
	Progress int        `json:"progress"`
	Error    string     `json:"error,omitempty"`
}

// Normalize converts one raw backend status payload into the canonical
// record. It is pure and total: any input yields a well-formed QueryStatus
// with State a member of the enumeration and Progress in [0,100], falling
// back to the supplied state when the payload is unrecognized.
func Normalize(queryID string, raw RawStatus, fallback QueryState) QueryStatus {
	status := strings.ToLower(strings.TrimSpace(raw.Status))

	state := fallback
	switch {
	case status == "processing":
		if mapped, ok := StepState(raw.step()); ok {
			state = mapped
		}
	case status == string(StateCompleted):
		state = StateCompleted
	case status == string(StateFailed):
		state = StateFailed
	}

	return QueryStatus{
		QueryID:  queryID,
		State:    state,
		Progress: clampProgress(raw.Progress),
		Error:    raw.Error,
	}
}

// NormalizeFrame normalizes one inbound frame, merging the nested data
// object (when present) over the frame's top-level status fields.
func NormalizeFrame(f Frame, fallback QueryState) QueryStatus {
	raw := f.RawStatus
	if f.Data != nil {
		raw = raw.merge(*f.Data)
	}
	return Normalize(f.QueryID, raw, fallback)
}

// clampProgress converts the raw progress value to an integer percentage.
// Fractions in (0,1] scale by 100; everything clamps into [0,100].
func clampProgress(p *float64) int {
	if p == nil {
		return 0
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > 0 && v <= 1 {
		v *= 100
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
