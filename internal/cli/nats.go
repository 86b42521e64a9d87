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

// Package cli provides shared utilities for CLI startup commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/storefront/internal/config"
)

// DefaultAuditBucket is used when no bucket is configured.
const DefaultAuditBucket = "storefront-audit"

// ParseStorageType maps "memory"/"file" to a JetStream storage type.
func ParseStorageType(
	s string,
) nats.StorageType {
	if s == "memory" {
		return nats.MemoryStorage
	}

	return nats.FileStorage
}

// BuildNATSOptions converts config auth and naming into connect options.
func BuildNATSOptions(
	logger *slog.Logger,
	cfg config.NATS,
) []nats.Option {
	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	}

	switch cfg.Auth.Type {
	case "user_pass":
		opts = append(opts, nats.UserInfo(cfg.Auth.Username, cfg.Auth.Password))
	case "token":
		opts = append(opts, nats.Token(cfg.Auth.Token))
	}

	return opts
}

// ConnectNATS dials the configured server.
func ConnectNATS(
	logger *slog.Logger,
	cfg config.NATS,
) (*nats.Conn, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url, BuildNATSOptions(logger, cfg)...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}

	return nc, nil
}

// BuildAuditKVConfig builds the audit bucket configuration.
func BuildAuditKVConfig(
	auditCfg config.NATSAudit,
) *nats.KeyValueConfig {
	bucket := auditCfg.Bucket
	if bucket == "" {
		bucket = DefaultAuditBucket
	}

	replicas := auditCfg.Replicas
	if replicas == 0 {
		replicas = 1
	}

	return &nats.KeyValueConfig{
		Bucket:   bucket,
		TTL:      auditCfg.TTL,
		MaxBytes: auditCfg.MaxBytes,
		Storage:  ParseStorageType(auditCfg.Storage),
		Replicas: replicas,
	}
}

// KeyValueManager is the part of nats.JetStreamContext used to open buckets.
type KeyValueManager interface {
	KeyValue(bucket string) (nats.KeyValue, error)
	CreateKeyValue(cfg *nats.KeyValueConfig) (nats.KeyValue, error)
}

// OpenKeyValue binds to the bucket, creating it when it does not exist.
func OpenKeyValue(
	js KeyValueManager,
	cfg *nats.KeyValueConfig,
) (nats.KeyValue, error) {
	kv, err := js.KeyValue(cfg.Bucket)
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("bind kv bucket %s: %w", cfg.Bucket, err)
	}

	kv, err = js.CreateKeyValue(cfg)
	if err != nil {
		return nil, fmt.Errorf("create kv bucket %s: %w", cfg.Bucket, err)
	}

	return kv, nil
}
