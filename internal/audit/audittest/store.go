// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package audittest provides an in-memory audit store for tests.
package audittest

import (
	"context"
	"sort"
	"sync"

	"github.com/retr0h/storefront/internal/audit"
)

// Store is a concurrency-safe in-memory audit.Store.
type Store struct {
	mu      sync.Mutex
	records []audit.Record
	// Err, when set, is returned by Write.
	Err error
}

// Write appends record unless Err is set.
func (s *Store) Write(
	_ context.Context,
	record audit.Record,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.records = append(s.records, record)

	return nil
}

// Get returns the record with id.
func (s *Store) Get(
	_ context.Context,
	id string,
) (*audit.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}

	return nil, audit.ErrNotFound
}

// List returns records newest first.
func (s *Store) List(
	_ context.Context,
	limit int,
	offset int,
) ([]audit.Record, int, error) {
	all := s.Records()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if offset >= total {
		return []audit.Record{}, total, nil
	}

	return all[offset:min(offset+limit, total)], total, nil
}

// Records returns a copy of everything written, oldest first.
func (s *Store) Records() []audit.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]audit.Record(nil), s.records...)
}
