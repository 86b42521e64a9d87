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

package audit_test

import (
	"context"
	"log/slog"

	auditapi "github.com/retr0h/storefront/internal/api/audit"
	"github.com/retr0h/storefront/internal/api/response"
	auditstore "github.com/retr0h/storefront/internal/audit"
)

// fakeStore is a simple in-memory audit store for handler tests.
type fakeStore struct {
	// Get
	getRecord *auditstore.Record
	getErr    error

	// List
	listRecords []auditstore.Record
	listTotal   int
	listErr     error
	listLimit   int
	listOffset  int
}

func (f *fakeStore) Write(
	_ context.Context,
	_ auditstore.Record,
) error {
	return nil
}

func (f *fakeStore) Get(
	_ context.Context,
	_ string,
) (*auditstore.Record, error) {
	return f.getRecord, f.getErr
}

func (f *fakeStore) List(
	_ context.Context,
	limit int,
	offset int,
) ([]auditstore.Record, int, error) {
	f.listLimit = limit
	f.listOffset = offset

	return f.listRecords, f.listTotal, f.listErr
}

func newTestAuditHandler(
	store auditstore.Store,
) *auditapi.Audit {
	return auditapi.New(slog.Default(), response.New(slog.Default(), false), store)
}
