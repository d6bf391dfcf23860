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

// cspdb is a little utility to look inside trace histories that
// csptrace -d writes.
//
// Usage:
//
//	cspdb -f trace.db sessions
//	cspdb -f trace.db dump SESSION
//	cspdb -f trace.db rm SESSION
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

func main() {
	var (
		filename = flag.String("f", "trace.db", "trace history filename")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-f trace.db] sessions | dump SESSION | rm SESSION\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	opts := &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: flag.Arg(0) != "rm",
	}
	db, err := bolt.Open(*filename, 0644, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch flag.Arg(0) {
	case "sessions":
		err = db.View(func(tx *bolt.Tx) error {
			return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
				fmt.Printf("%s (%d events)\n", name, b.Stats().KeyN)
				return nil
			})
		})
	case "dump":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(1)
		}
		err = db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(flag.Arg(1)))
			if b == nil {
				return fmt.Errorf("no session %s", flag.Arg(1))
			}
			return b.ForEach(func(_, v []byte) error {
				fmt.Printf("%s\n", v)
				return nil
			})
		})
	case "rm":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(1)
		}
		err = db.Update(func(tx *bolt.Tx) error {
			return tx.DeleteBucket([]byte(flag.Arg(1)))
		})
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}
}
