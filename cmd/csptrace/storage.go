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

package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

// TraceRecord is one accepted event as stored in the history.
type TraceRecord struct {
	At      string `json:"at"`
	Event   string `json:"event"`
	Process string `json:"process,omitempty"`
}

// Storage is a type of persistence: a bbolt file with one bucket per
// tracing session, keyed by a sequence number.
type Storage struct {
	Debug    bool
	filename string
	session  []byte
	db       *bolt.DB
}

// NewStorage takes in a filename and returns a Storage object.  The
// session bucket is named by the start time.
func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
		session:  []byte(time.Now().UTC().Format(time.RFC3339Nano)),
	}, nil
}

// Open opens the underlying database.
func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db

	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.session)
		return err
	})
}

// Close closes the underlying database.
func (s *Storage) Close(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one accepted event to the session's bucket.
func (s *Storage) Record(event, process string) error {
	if s == nil || s.db == nil {
		return nil
	}
	rec := TraceRecord{
		At:      time.Now().UTC().Format(time.RFC3339Nano),
		Event:   event,
		Process: process,
	}
	js, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.session)
		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, n)
		return b.Put(key, js)
	})
}
