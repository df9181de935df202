// Package metrics combines action metric sinks.
package metrics

import "homestead/internal/app/ports"

// Fanout forwards every call to each non-nil recorder in order.
type Fanout []ports.ActionMetrics

func NewFanout(recorders ...ports.ActionMetrics) Fanout {
	out := make(Fanout, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (f Fanout) RecordSuccess(action string) {
	for _, r := range f {
		r.RecordSuccess(action)
	}
}

func (f Fanout) RecordRejected(reason string) {
	for _, r := range f {
		r.RecordRejected(reason)
	}
}

func (f Fanout) RecordConflict() {
	for _, r := range f {
		r.RecordConflict()
	}
}

func (f Fanout) RecordFailure() {
	for _, r := range f {
		r.RecordFailure()
	}
}

func (f Fanout) RecordEvents(events []ports.EventRecord) {
	for _, r := range f {
		r.RecordEvents(events)
	}
}
