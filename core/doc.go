/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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


// Package core provides the core gear for tracing CSP processes: the
// process combinators of Hoare's Communicating Sequential Processes,
// their alphabets, and the stepping semantics that drive a trace.
//
// The primary type is Process, and the primary methods are
// Acceptable() and Proceed().  A Process reports the set of events it
// is currently willing to engage in, and Proceed() attempts to engage
// in one event, returning the successor Process.  A Process that
// returns an empty Acceptable() set has deadlocked; a Process whose
// Acceptable() set contains the Success event has terminated
// successfully.
//
// Processes form a graph, not a tree: a sub-process may be shared by
// several parents, which is how mutual recursion is represented.  A
// process's alphabet, if not set explicitly, is inferred from that
// graph by monotone fixed-point propagation.  See Alphabet.
//
// All runtime state -- variable bindings made by channel input, the
// pseudo-random generator used to resolve non-determinism, and the
// per-operator scratch memory some combinators need between an
// Acceptable() call and the Proceed() that follows it -- lives in a
// Status.  Processes themselves carry only monotone cached data
// (alphabets, dependants, channel subscriptions), so a node shared by
// two parents maintains two independent runtime histories.
//
// To use this package, build a Process (usually with the parser),
// make a Status with NewStatus(), and alternate Acceptable() and
// Proceed() until the process terminates, deadlocks, or refuses.
package core
