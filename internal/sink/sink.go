// Package sink defines the notification sink capability.
//
// A sink is any destination that can attempt to durably record or announce
// one maintenance request: the Telegram chat channel and the Google Sheets
// ledger are the two shipped implementations. Sinks are independent failure
// domains; the only thing a sink may tell the dispatcher is a single
// outcome per attempt.
package sink

import (
	"context"

	"roomcare/internal/request"
)

// Sink is a destination for one maintenance request.
//
// Contract:
//   - Attempt must never panic across the boundary; any internal failure
//     (network timeout, auth failure, missing configuration) is captured
//     and returned as a failed Outcome with a diagnostic detail
//   - Attempt must not mutate the record
//   - Attempt must honor the context deadline set by the dispatcher
type Sink interface {
	// Name identifies the sink in outcomes and logs (e.g., "telegram").
	Name() string

	// Attempt delivers the record once and reports the result.
	Attempt(ctx context.Context, rec *request.Record) Outcome
}

// Outcome is the per-sink result of one delivery attempt.
type Outcome struct {
	Sink      string `json:"name"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail,omitempty"`
}

// Report aggregates one Outcome per configured sink for one submission.
//
// Outcomes are ordered by sink registration, not by completion time, so
// callers can address results deterministically.
type Report struct {
	ID       string    `json:"id"`
	Outcomes []Outcome `json:"sink_results"`
}

// AnySucceeded reports whether at least one sink accepted the record.
//
// The submission as a whole counts as delivered when this is true:
// each sink is an independent record of the same event and partial
// coverage beats silently discarding a report.
func (r *Report) AnySucceeded() bool {
	for _, o := range r.Outcomes {
		if o.Succeeded {
			return true
		}
	}
	return false
}

// Outcome returns the outcome for the named sink, if present.
func (r *Report) Outcome(name string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Sink == name {
			return o, true
		}
	}
	return Outcome{}, false
}

// Succeed builds a successful outcome for the named sink.
func Succeed(name string) Outcome {
	return Outcome{Sink: name, Succeeded: true}
}

// Fail builds a failed outcome with a diagnostic detail.
func Fail(name, detail string) Outcome {
	return Outcome{Sink: name, Succeeded: false, Detail: detail}
}
