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

package export_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/audit/export"
)

type FilePublicTestSuite struct {
	suite.Suite

	ctx context.Context
	fs  afero.Fs
}

func (s *FilePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fs = afero.NewMemMapFs()
}

func (s *FilePublicTestSuite) TestWritesJSONLines() {
	exp := export.NewFileExporter(s.fs, "/var/export/audit.jsonl")
	s.Require().NoError(exp.Open(s.ctx))

	for _, id := range []string{"rec-1", "rec-2"} {
		s.Require().NoError(exp.Write(s.ctx, audit.Record{
			ID:         id,
			Action:     audit.ActionUpdate,
			EntityType: "Featured",
			CreatedAt:  time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC),
		}))
	}
	s.Require().NoError(exp.Close(s.ctx))

	data, err := afero.ReadFile(s.fs, "/var/export/audit.jsonl")
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Require().Len(lines, 2)

	var first audit.Record
	s.Require().NoError(json.Unmarshal([]byte(lines[0]), &first))
	s.Equal("rec-1", first.ID)
	s.Equal(audit.ActionUpdate, first.Action)
}

func (s *FilePublicTestSuite) TestErrors() {
	tests := []struct {
		name         string
		setup        func() *export.FileExporter
		run          func(*export.FileExporter) error
		errSubstring string
	}{
		{
			name: "when filesystem is read-only open fails",
			setup: func() *export.FileExporter {
				return export.NewFileExporter(afero.NewReadOnlyFs(s.fs), "/out/audit.jsonl")
			},
			run: func(e *export.FileExporter) error {
				return e.Open(s.ctx)
			},
			errSubstring: "export",
		},
		{
			name: "when write called before open",
			setup: func() *export.FileExporter {
				return export.NewFileExporter(s.fs, "audit.jsonl")
			},
			run: func(e *export.FileExporter) error {
				return e.Write(s.ctx, audit.Record{ID: "x"})
			},
			errSubstring: "exporter not opened",
		},
		{
			name: "when close called before open",
			setup: func() *export.FileExporter {
				return export.NewFileExporter(s.fs, "audit.jsonl")
			},
			run: func(e *export.FileExporter) error {
				return e.Close(s.ctx)
			},
			errSubstring: "exporter not opened",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.run(tt.setup())
			s.Require().Error(err)
			s.Contains(err.Error(), tt.errSubstring)
		})
	}
}

func TestFilePublicTestSuite(t *testing.T) {
	suite.Run(t, new(FilePublicTestSuite))
}
