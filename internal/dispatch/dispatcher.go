// Package dispatch orchestrates the fan-out of one maintenance request
// to every configured notification sink.
//
// Flow:
//  1. Resolve the room reference (catalog lookup for bare room numbers)
//  2. Validate and build the canonical record
//  3. Attempt every sink concurrently, each under its own deadline
//  4. Aggregate one outcome per sink into a report
//
// Sinks cannot observe or influence each other: a slow, failing, or
// panicking sink never delays or corrupts another sink's attempt, and no
// sink failure aborts the dispatch. Only validation fails the operation.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomcare/internal/request"
	"roomcare/internal/sink"
)

// RoomLookup resolves a bare room number to its catalog entry.
type RoomLookup func(number int) (request.RoomRef, bool)

// Dispatcher fans one submission out to all configured sinks.
//
// Thread-safety:
//   - Sinks and timeout are fixed at construction and never mutated
//   - Submissions are independent; concurrent Submit calls share nothing
type Dispatcher struct {
	sinks   []sink.Sink
	lookup  RoomLookup
	timeout time.Duration
	now     func() time.Time
}

// New creates a dispatcher over the given sinks.
//
// Parameters:
//   - timeout: Per-sink delivery deadline during fan-out
//   - lookup: Room catalog lookup, may be nil when callers always send
//     a full room reference
//   - sinks: Configured sinks, attempted in registration order
func New(timeout time.Duration, lookup RoomLookup, sinks ...sink.Sink) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		lookup:  lookup,
		timeout: timeout,
		now:     time.Now,
	}
}

// Submit validates a submission and delivers it to every sink.
//
// On validation failure the returned error is a *errors.ValidationError
// naming every missing field and no sink is invoked. Otherwise a report
// with exactly one outcome per sink is returned; outcomes keep sink
// registration order regardless of completion order.
//
// Each sink gets exactly one attempt. No retries happen here: a retry
// policy belongs inside a sink's Attempt so per-sink independence is
// preserved.
func (d *Dispatcher) Submit(ctx context.Context, sub request.Submission) (*sink.Report, error) {
	// Bare room numbers come from QR deep links; resolve them first so
	// validation sees a full room reference.
	if sub.Room == nil && sub.RoomNumber > 0 && d.lookup != nil {
		if ref, ok := d.lookup(sub.RoomNumber); ok {
			sub.Room = &ref
		}
	}

	rec, err := request.NewRecord(sub, d.now())
	if err != nil {
		return nil, err
	}

	report := &sink.Report{
		ID:       uuid.NewString(),
		Outcomes: make([]sink.Outcome, len(d.sinks)),
	}

	var wg sync.WaitGroup
	for i, s := range d.sinks {
		wg.Add(1)
		go func(i int, s sink.Sink) {
			defer wg.Done()
			report.Outcomes[i] = d.attempt(ctx, s, rec)
		}(i, s)
	}
	wg.Wait()

	for _, o := range report.Outcomes {
		if o.Succeeded {
			log.Printf("✓ [%s] sink %s delivered request for room %s", report.ID, o.Sink, rec.Room.Number)
		} else {
			log.Printf("⚠️  [%s] sink %s failed: %s", report.ID, o.Sink, o.Detail)
		}
	}

	return report, nil
}

// attempt runs one sink under its own deadline and converts every
// internal fault into a failed outcome.
//
// The sink runs in its own goroutine so a sink that ignores its context
// still cannot hold up the join: when the deadline passes, the attempt
// is recorded as failed and the dispatcher moves on.
func (d *Dispatcher) attempt(ctx context.Context, s sink.Sink, rec *request.Record) sink.Outcome {
	actx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan sink.Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- sink.Fail(s.Name(), fmt.Sprintf("panic: %v", r))
			}
		}()
		done <- s.Attempt(actx, rec)
	}()

	select {
	case out := <-done:
		return out
	case <-actx.Done():
		return sink.Fail(s.Name(), fmt.Sprintf("timed out after %v", d.timeout))
	}
}
