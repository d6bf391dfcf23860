// cspmq drives a trace over MQTT: events arrive on PREFIX/events,
// and every transition is published on PREFIX/trace.
//
// Usage:
//
//	cspmq [-h tcp://localhost:1883] [-i clientid] [-T csp] [-s seed] source.csp
//
// The broker flags follow the mosquitto command-line conventions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Comcast/csp/parser"
	"github.com/Comcast/csp/sio"
)

func main() {
	var (
		broker    = flag.String("h", "tcp://localhost:1883", "broker URL")
		clientId  = flag.String("i", "cspmq", "client id")
		userName  = flag.String("u", "", "username")
		password  = flag.String("P", "", "password")
		keepAlive = flag.Duration("k", 10*time.Second, "keep-alive")
		prefix    = flag.String("T", "csp", "topic prefix")
		seed      = flag.Int64("s", 0, "seed for the trace's random generator (0: from the clock)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] source.csp\n", os.Args[0])
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
		log.Fatal(err)
	}
	process, _, err := parser.Parse(filename, string(src), os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	mq, err := sio.NewMQ(sio.MQOptions{
		Broker:    *broker,
		ClientID:  *clientId,
		Username:  *userName,
		Password:  *password,
		KeepAlive: *keepAlive,
	}, *prefix)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, err := mq.Run(ctx, sio.NewTrace(process, *seed))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("trace %s", outcome)
}
