/* Copyright 2018 Comcast Cable Communications Management, LLC
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

// csptrace is the interactive tracer: it parses a CSP script,
// reports the alphabet and the acceptable events, and steps the
// process on events read from stdin (or drawn at random with -P).
//
// Usage:
//
//	csptrace [-AaepvP n] [-s seed] [-d trace.db] [-t session.yaml] source.csp
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Comcast/csp/interpreters"
	"github.com/Comcast/csp/parser"
	"github.com/Comcast/csp/sio"
	"github.com/Comcast/csp/tools"
)

func main() {
	var (
		printAlphabetOnly = flag.Bool("A", false, "print alphabet, one event per line, and exit")
		noAlphabet        = flag.Bool("a", false, "do not print the alphabet at the beginning")
		echoEvents        = flag.Bool("e", false, "print events, if accepted")
		noProcess         = flag.Bool("p", false, "do not print current process after each event")
		noAcceptable      = flag.Bool("v", false, "do not print the set of acceptable events")
		auto              = flag.Int("P", 0, "drive automatically for up to `n` random events")
		seed              = flag.Int64("s", 0, "seed for the trace's random generator (0: from the clock)")
		dbFile            = flag.String("d", "", "append accepted events to this trace history (bbolt)")
		sessionFile       = flag.String("t", "", "run the YAML session against the script and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-AaepvP n] [-s seed] [-d trace.db] [-t session.yaml] source.csp\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: unable to open %s for reading\n", os.Args[0], filename)
		os.Exit(1)
	}

	process, _, err := parser.Parse(filename, string(src), os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *sessionFile != "" {
		bs, err := os.ReadFile(*sessionFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		session, err := tools.LoadSession(bs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		session.Interpreters = interpreters.Standard()
		if err := session.Run(ctx, process); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("OK")
		return
	}

	if *printAlphabetOnly {
		for _, event := range process.Alphabet().Events() {
			fmt.Println(event)
		}
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	trace := sio.NewTrace(process, *seed)

	coupling := sio.NewStdio()
	coupling.EchoEvents = *echoEvents
	coupling.PrintProcess = !*noProcess
	coupling.PrintAcceptable = !*noAcceptable
	coupling.Auto = *auto

	if *dbFile != "" {
		store, err := NewStorage(*dbFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := store.Open(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer store.Close(ctx)
		coupling.Store = store
	}

	if !*noProcess {
		fmt.Printf("Tracing: %s\n", process)
	}
	if !*noAlphabet {
		fmt.Printf("Alphabet: %s\n", process.Alphabet())
	}
	if !*noAcceptable {
		fmt.Printf("Acceptable: %s\n", trace.Acceptable())
	}

	outcome, err := coupling.Run(ctx, trace)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if outcome == sio.Refused {
		os.Exit(1)
	}
}
