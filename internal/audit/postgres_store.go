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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/retr0h/storefront/internal/dbx"
)

// ensure PostgresStore implements Store at compile time.
var _ Store = (*PostgresStore)(nil)

const recordColumns = `id, user_id, action, entity_type, entity_id, old_values, new_values,
	ip_address, user_agent, request_id, status, severity, metadata, created_at`

// PostgresStore implements Store on the audit_records table. Records are
// only ever inserted.
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(
	db dbx.DBTX,
) *PostgresStore {
	return &PostgresStore{db: db}
}

// Write inserts a record.
func (s *PostgresStore) Write(
	ctx context.Context,
	record Record,
) error {
	oldValues, err := jsonColumn(record.OldValues)
	if err != nil {
		return fmt.Errorf("marshal old values: %w", err)
	}
	newValues, err := jsonColumn(record.NewValues)
	if err != nil {
		return fmt.Errorf("marshal new values: %w", err)
	}
	var metadata []byte
	if record.Metadata != nil {
		if metadata, err = marshalJSON(record.Metadata); err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
	}

	query := `INSERT INTO audit_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.UserID, string(record.Action), record.EntityType,
		record.EntityID, oldValues, newValues, record.IPAddress,
		record.UserAgent, record.RequestID, string(record.Status),
		string(record.Severity), metadata, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}

	return nil
}

// Get returns the record with id.
func (s *PostgresStore) Get(
	ctx context.Context,
	id string,
) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM audit_records WHERE id = $1`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get audit record: %w", err)
	}

	return record, nil
}

// List returns records newest first.
func (s *PostgresStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Record, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_records`).
		Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit records: %w", err)
	}

	query := `SELECT ` + recordColumns + ` FROM audit_records
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit records: %w", err)
	}

	return records, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(
	row scanner,
) (*Record, error) {
	var (
		record                        Record
		action, status, severity      string
		oldValues, newValues, metaRaw []byte
	)

	if err := row.Scan(
		&record.ID, &record.UserID, &action, &record.EntityType,
		&record.EntityID, &oldValues, &newValues, &record.IPAddress,
		&record.UserAgent, &record.RequestID, &status, &severity,
		&metaRaw, &record.CreatedAt,
	); err != nil {
		return nil, err
	}

	record.Action = Action(action)
	record.Status = Status(status)
	record.Severity = Severity(severity)

	if len(oldValues) > 0 {
		if err := json.Unmarshal(oldValues, &record.OldValues); err != nil {
			return nil, fmt.Errorf("decode old values: %w", err)
		}
	}
	if len(newValues) > 0 {
		if err := json.Unmarshal(newValues, &record.NewValues); err != nil {
			return nil, fmt.Errorf("decode new values: %w", err)
		}
	}
	if len(metaRaw) > 0 {
		if err := json.Unmarshal(metaRaw, &record.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}

	return &record, nil
}

func jsonColumn(
	v any,
) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	return marshalJSON(v)
}
