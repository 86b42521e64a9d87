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

package cli_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/cli"
	"github.com/retr0h/storefront/internal/config"
)

type fakeKV struct {
	nats.KeyValue

	bucket string
}

type fakeKVManager struct {
	bindErr   error
	createErr error
	created   *nats.KeyValueConfig
}

func (m *fakeKVManager) KeyValue(
	bucket string,
) (nats.KeyValue, error) {
	if m.bindErr != nil {
		return nil, m.bindErr
	}

	return &fakeKV{bucket: bucket}, nil
}

func (m *fakeKVManager) CreateKeyValue(
	cfg *nats.KeyValueConfig,
) (nats.KeyValue, error) {
	m.created = cfg
	if m.createErr != nil {
		return nil, m.createErr
	}

	return &fakeKV{bucket: cfg.Bucket}, nil
}

type NATSTestSuite struct {
	suite.Suite
}

func TestNATSTestSuite(t *testing.T) {
	suite.Run(t, new(NATSTestSuite))
}

func (suite *NATSTestSuite) TestParseStorageType() {
	tests := []struct {
		name  string
		input string
		want  nats.StorageType
	}{
		{name: "when memory returns memory storage", input: "memory", want: nats.MemoryStorage},
		{name: "when file returns file storage", input: "file", want: nats.FileStorage},
		{name: "when empty defaults to file storage", input: "", want: nats.FileStorage},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.want, cli.ParseStorageType(tc.input))
		})
	}
}

func (suite *NATSTestSuite) TestBuildAuditKVConfig() {
	tests := []struct {
		name         string
		cfg          config.NATSAudit
		wantBucket   string
		wantTTL      time.Duration
		wantReplicas int
		wantStorage  nats.StorageType
	}{
		{
			name: "when fully configured",
			cfg: config.NATSAudit{
				Bucket:   "audit-log",
				TTL:      720 * time.Hour,
				MaxBytes: 1 << 20,
				Storage:  "memory",
				Replicas: 3,
			},
			wantBucket:   "audit-log",
			wantTTL:      720 * time.Hour,
			wantReplicas: 3,
			wantStorage:  nats.MemoryStorage,
		},
		{
			name:         "when empty applies defaults",
			wantBucket:   cli.DefaultAuditBucket,
			wantReplicas: 1,
			wantStorage:  nats.FileStorage,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.BuildAuditKVConfig(tc.cfg)

			assert.Equal(suite.T(), tc.wantBucket, got.Bucket)
			assert.Equal(suite.T(), tc.wantTTL, got.TTL)
			assert.Equal(suite.T(), tc.cfg.MaxBytes, got.MaxBytes)
			assert.Equal(suite.T(), tc.wantReplicas, got.Replicas)
			assert.Equal(suite.T(), tc.wantStorage, got.Storage)
		})
	}
}

func (suite *NATSTestSuite) TestBuildNATSOptions() {
	tests := []struct {
		name     string
		authType string
		wantLen  int
	}{
		{name: "when no auth", authType: "none", wantLen: 4},
		{name: "when user and password", authType: "user_pass", wantLen: 5},
		{name: "when token", authType: "token", wantLen: 5},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := config.NATS{
				ClientName: "storefront",
				Auth:       config.NATSAuth{Type: tc.authType, Username: "u", Password: "p", Token: "t"},
			}

			got := cli.BuildNATSOptions(slog.Default(), cfg)

			assert.Len(suite.T(), got, tc.wantLen)
		})
	}
}

func (suite *NATSTestSuite) TestOpenKeyValue() {
	tests := []struct {
		name        string
		bindErr     error
		createErr   error
		wantCreated bool
		wantErr     string
	}{
		{
			name: "when the bucket exists binds to it",
		},
		{
			name:        "when the bucket is missing creates it",
			bindErr:     nats.ErrBucketNotFound,
			wantCreated: true,
		},
		{
			name:    "when binding fails otherwise returns the error",
			bindErr: errors.New("timeout"),
			wantErr: "bind kv bucket audit: timeout",
		},
		{
			name:        "when creation fails returns the error",
			bindErr:     nats.ErrBucketNotFound,
			createErr:   errors.New("insufficient resources"),
			wantCreated: true,
			wantErr:     "create kv bucket audit: insufficient resources",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			m := &fakeKVManager{bindErr: tc.bindErr, createErr: tc.createErr}

			kv, err := cli.OpenKeyValue(m, &nats.KeyValueConfig{Bucket: "audit"})

			assert.Equal(suite.T(), tc.wantCreated, m.created != nil)
			if tc.wantErr != "" {
				assert.EqualError(suite.T(), err, tc.wantErr)
				assert.Nil(suite.T(), kv)
				return
			}

			assert.NoError(suite.T(), err)
			assert.Equal(suite.T(), "audit", kv.(*fakeKV).bucket)
		})
	}
}
