// Package csp provides an interactive tracer for Communicating
// Sequential Processes.
//
// The process algebra engine is in package 'core', the script front
// end in 'parser', and the command-line tools in 'cmd'.  Start with
// cmd/csptrace.
package csp
