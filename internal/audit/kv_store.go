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

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nats-io/nats.go"
)

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// marshalJSON is swapped in tests.
var marshalJSON = json.Marshal

// KeyValue is the part of nats.KeyValue the audit store uses.
type KeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Keys(opts ...nats.WatchOpt) ([]string, error)
}

// KVStore implements Store backed by a NATS KeyValue bucket. Record ids are
// UUIDv7, so key order is creation order.
type KVStore struct {
	kv     KeyValue
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// Write persists an audit record to the KV bucket.
func (s *KVStore) Write(
	_ context.Context,
	record Record,
) error {
	data, err := marshalJSON(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	if _, err := s.kv.Put(record.ID, data); err != nil {
		return fmt.Errorf("put audit record: %w", err)
	}

	return nil
}

// Get retrieves a single audit record by ID.
func (s *KVStore) Get(
	_ context.Context,
	id string,
) (*Record, error) {
	kve, err := s.kv.Get(id)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get audit record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(kve.Value(), &record); err != nil {
		return nil, fmt.Errorf("unmarshal audit record: %w", err)
	}

	return &record, nil
}

// List retrieves audit records newest first with pagination. Unreadable
// entries are logged and skipped.
func (s *KVStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Record, int, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return []Record{}, 0, nil
		}
		return nil, 0, fmt.Errorf("list audit keys: %w", err)
	}

	total := len(keys)
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	if offset >= total {
		return []Record{}, total, nil
	}

	end := min(offset+limit, total)

	records := make([]Record, 0, end-offset)
	for _, key := range keys[offset:end] {
		kve, err := s.kv.Get(key)
		if err != nil {
			s.logger.WarnContext(
				ctx,
				"failed to get audit record",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		var record Record
		if err := json.Unmarshal(kve.Value(), &record); err != nil {
			s.logger.WarnContext(
				ctx,
				"failed to unmarshal audit record",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		records = append(records, record)
	}

	return records, total, nil
}
