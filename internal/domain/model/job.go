package model

import "time"

type JobState string

const (
	JobStatePending   JobState = "pending"
	JobStateSucceeded JobState = "succeeded"
	JobStateFailed    JobState = "failed"
)

// JobHandle is the opaque identifier a vendor returns when it accepts an
// asynchronous operation. It lives only for the duration of the poll loop.
type JobHandle struct {
	ID     string
	Vendor string
}

// JobResult is the tagged outcome of one status check. A job starts Pending
// and transitions exactly once to Succeeded or Failed.
type JobResult struct {
	State   JobState
	Payload map[string]any
	Reason  string
}

func Pending() *JobResult {
	return &JobResult{State: JobStatePending}
}

func Succeeded(payload map[string]any) *JobResult {
	return &JobResult{State: JobStateSucceeded, Payload: payload}
}

func Failed(reason string) *JobResult {
	return &JobResult{State: JobStateFailed, Reason: reason}
}

// Terminal reports whether no further transitions can occur.
func (r *JobResult) Terminal() bool {
	return r.State == JobStateSucceeded || r.State == JobStateFailed
}

// JobRequest describes one vendor operation as submitted by a caller.
// Immutable; discarded after the job reaches a terminal state.
type JobRequest struct {
	ID        string
	Vendor    string
	Prompt    string
	Image     string
	Audio     []byte
	CreatedAt time.Time
}
