/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sio couples a trace to the world: stdin/stdout for the
// interactive tracer, MQTT for traces driven over a broker.
package sio

import (
	"github.com/Comcast/csp/core"
)

// TraceStore records the events a trace engages in.  The tracer
// calls Record once per accepted event; implementations decide what
// durability means.
type TraceStore interface {
	// Record stores one accepted event and the successor
	// process's rendering.
	Record(event, process string) error
}

// Outcome says how a trace ended.
type Outcome int

const (
	// Terminated means the process accepted Success.
	Terminated Outcome = iota

	// Exhausted means the input ran dry (or the step budget did).
	Exhausted

	// Deadlocked means the acceptable set was empty.
	Deadlocked

	// Refused means the process rejected an event that is in its
	// alphabet.
	Refused
)

func (o Outcome) String() string {
	switch o {
	case Terminated:
		return "terminated"
	case Exhausted:
		return "exhausted"
	case Deadlocked:
		return "deadlocked"
	case Refused:
		return "refused"
	}
	return "unknown"
}

// Trace is the state a coupling drives: the current process and its
// status.
type Trace struct {
	Process core.Process
	Status  *core.Status
}

// NewTrace makes a trace over the process with a fresh status seeded
// as given.
func NewTrace(p core.Process, seed int64) *Trace {
	return &Trace{
		Process: p,
		Status:  core.NewStatus(seed),
	}
}

// Acceptable returns the current acceptable set.
func (t *Trace) Acceptable() core.Alphabet {
	return t.Process.Acceptable(t.Status)
}

// Step offers one event.  It reports false if the process refused.
func (t *Trace) Step(event string) bool {
	next, st := t.Process.Proceed(event, t.Status)
	if next == nil {
		return false
	}
	t.Process, t.Status = next, st
	return true
}

// Done reports whether the process accepts Success.
func (t *Trace) Done() bool {
	return core.AcceptsSuccess(t.Process, t.Status)
}
