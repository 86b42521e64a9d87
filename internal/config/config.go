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

// Package config holds the storefront configuration schema, its defaults,
// validation and masking.
package config

import (
	"errors"
	"time"

	masker "github.com/ggwhite/go-masker/v2"
	"github.com/spf13/viper"

	"github.com/retr0h/storefront/internal/validation"
)

// SetDefaults registers default values on v. Values in the config file and
// STOREFRONT_* environment variables take precedence.
func SetDefaults(
	v *viper.Viper,
) {
	v.SetDefault("environment", EnvProduction)
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.body_limit", "1M")
	v.SetDefault("api.security.token_ttl", 24*time.Hour)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("nats.client_name", "storefront")
	v.SetDefault("nats.audit.bucket", "storefront-audit")
	v.SetDefault("nats.audit.ttl", 720*time.Hour)
	v.SetDefault("nats.audit.storage", "file")
	v.SetDefault("nats.audit.replicas", 1)
	v.SetDefault("audit.backend", AuditBackendPostgres)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.max_concurrent", 5)
	v.SetDefault("session.sweep_schedule", "@every 15m")
	v.SetDefault("rate_limit.login_attempts", 5)
	v.SetDefault("rate_limit.login_window", 15*time.Minute)
	v.SetDefault("rate_limit.api_requests", 0)
	v.SetDefault("rate_limit.api_window", time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 20)
	v.SetDefault("logging.max_backups", 14)
	v.SetDefault("logging.max_age_days", 14)
	v.SetDefault("logging.compress", true)
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("printify.base_url", "https://api.printify.com/v1")
	v.SetDefault("printify.timeout", 15*time.Second)
	v.SetDefault("printify.max_retries", 3)
	v.SetDefault("docs.dir", "docs")
}

// Validate checks cfg against its validate tags.
func Validate(
	cfg *Config,
) error {
	if errMsg, ok := validation.Struct(cfg); !ok {
		return errors.New(errMsg)
	}

	return nil
}

// Masked returns a copy of cfg with every mask-tagged secret obscured,
// suitable for logging or printing.
func Masked(
	cfg Config,
) (any, error) {
	return masker.NewMaskerMarshaler().Struct(&cfg)
}
