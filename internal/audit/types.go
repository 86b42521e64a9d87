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

// Package audit records who changed what, derived from HTTP requests or
// reported explicitly by services, and stores the immutable records.
package audit

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("audit record not found")

// Action is what happened to the entity.
type Action string

// Actions.
const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
	ActionRefund Action = "REFUND"
)

// Status is the outcome of the audited operation.
type Status string

// Statuses.
const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusFailure Status = "failure"
)

// Severity ranks how much attention a record deserves.
type Severity string

// Severities.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Record is a single immutable audit entry.
type Record struct {
	ID         string `json:"id"`
	UserID     string `json:"userId,omitempty"`
	Action     Action `json:"action"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId,omitempty"`
	// OldValues and NewValues are stored after sensitive fields are redacted.
	OldValues any            `json:"oldValues,omitempty"`
	NewValues any            `json:"newValues,omitempty"`
	IPAddress string         `json:"ipAddress"`
	UserAgent string         `json:"userAgent"`
	RequestID string         `json:"requestId"`
	Status    Status         `json:"status"`
	Severity  Severity       `json:"severity"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Options describe a record to create. Request details (user, IP, user
// agent, request id) come from the context unless set here.
type Options struct {
	Action     Action
	EntityType string
	EntityID   string
	OldValues  any
	NewValues  any
	// StatusCode derives Status and Severity when they are not set. Zero is
	// treated as success.
	StatusCode int
	Status     Status
	Severity   Severity
	UserID     string
	Metadata   map[string]any
}

// Store persists audit records.
type Store interface {
	// Write persists a record.
	Write(ctx context.Context, record Record) error
	// Get returns a record by id or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns records newest first together with the total count.
	List(ctx context.Context, limit int, offset int) ([]Record, int, error)
}
