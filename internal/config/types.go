// Copyright (c) 2024 John Dewey

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

package config

import "time"

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Audit backends.
const (
	AuditBackendPostgres = "postgres"
	AuditBackendNATS     = "nats"
)

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	// Environment selects development-only behaviour such as console logging
	// and detailed error messages.
	Environment string    `mapstructure:"environment" validate:"oneof=development test staging production"`
	API         API       `mapstructure:"api"         mask:"struct"`
	Database    Database  `mapstructure:"database"    mask:"struct"`
	NATS        NATS      `mapstructure:"nats"        mask:"struct"`
	Audit       Audit     `mapstructure:"audit"`
	Session     Session   `mapstructure:"session"`
	RateLimit   RateLimit `mapstructure:"rate_limit"`
	Logging     Logging   `mapstructure:"logging"`
	Telemetry   Telemetry `mapstructure:"telemetry"`
	Stripe      Stripe    `mapstructure:"stripe"      mask:"struct"`
	Printify    Printify  `mapstructure:"printify"    mask:"struct"`
	Docs        Docs      `mapstructure:"docs"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// IsDevelopment reports whether internal error detail may be shown to clients.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment || c.Environment == EnvTest
}

// API configuration settings.
type API struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
	// BodyLimit caps request bodies (e.g., "1M").
	BodyLimit string `mapstructure:"body_limit"`
	// Security contains security-related configuration for the server.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// CustomRole defines a named set of permissions that can be assigned to tokens.
type CustomRole struct {
	// Permissions granted to this role.
	Permissions []string `mapstructure:"permissions"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
	// TokenTTL is the lifetime of tokens issued at login.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// Roles defines custom roles with fine-grained permissions.
	Roles map[string]CustomRole `mapstructure:"roles"`
	// TrustedProxies lists the CIDR ranges whose X-Forwarded-For header is
	// honoured. When empty the client address is the TCP peer.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server.
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// Database configuration settings.
type Database struct {
	// DSN is the Postgres connection string.
	DSN             string        `mapstructure:"dsn"               validate:"required" mask:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// MigrateOnStart applies pending migrations when the server starts.
	MigrateOnStart bool `mapstructure:"migrate_on_start"`
}

// NATSAuth holds client-side authentication settings for connecting to NATS.
type NATSAuth struct {
	// Type is the auth method: "none", "user_pass", or "token".
	Type     string `mapstructure:"type"     validate:"omitempty,oneof=none user_pass token"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password" mask:"password"`
	Token    string `mapstructure:"token"    mask:"password"`
}

// NATS configuration settings.
type NATS struct {
	// URL of the NATS server (e.g., "nats://localhost:4222").
	URL string `mapstructure:"url"`
	// ClientName identifies this process to the server.
	ClientName string    `mapstructure:"client_name"`
	Auth       NATSAuth  `mapstructure:"auth,omitempty"  mask:"struct"`
	Audit      NATSAudit `mapstructure:"audit,omitempty"`
}

// NATSAudit configuration for the audit log KV bucket.
type NATSAudit struct {
	// Bucket is the KV bucket name for audit records.
	Bucket   string        `mapstructure:"bucket"`
	TTL      time.Duration `mapstructure:"ttl"` // e.g. "720h" (30 days)
	MaxBytes int64         `mapstructure:"max_bytes"`
	Storage  string        `mapstructure:"storage" validate:"omitempty,oneof=file memory"`
	Replicas int           `mapstructure:"replicas"`
}

// Audit configuration settings.
type Audit struct {
	// Backend selects the audit store: "postgres" or "nats".
	Backend string `mapstructure:"backend" validate:"oneof=postgres nats"`
	// IncludeReads records GET requests as READ actions.
	IncludeReads bool `mapstructure:"include_reads"`
	// ExcludedPaths are additional path prefixes that are never audited.
	ExcludedPaths []string `mapstructure:"excluded_paths"`
}

// Session configuration settings.
type Session struct {
	// TTL is how long a login session stays valid.
	TTL time.Duration `mapstructure:"ttl"`
	// MaxConcurrent caps active sessions per user; 0 disables the cap.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"gte=0"`
	// SweepSchedule is the cron spec for invalidating expired sessions.
	SweepSchedule string `mapstructure:"sweep_schedule"`
}

// RateLimit configuration settings.
type RateLimit struct {
	// LoginAttempts allowed per client IP within LoginWindow.
	LoginAttempts int           `mapstructure:"login_attempts" validate:"gt=0"`
	LoginWindow   time.Duration `mapstructure:"login_window"   validate:"gt=0"`
	// APIRequests allowed per client IP within APIWindow; 0 disables it.
	APIRequests int           `mapstructure:"api_requests" validate:"gte=0"`
	APIWindow   time.Duration `mapstructure:"api_window"`
}

// Logging configuration settings.
type Logging struct {
	// Level is the minimum level written to combined.log and the console.
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	// Dir holds error.log and combined.log; empty disables file output.
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	// Console forces console output outside development.
	Console bool `mapstructure:"console"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// SampleRatio samples this fraction of new traces; 0 or 1 samples all.
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

// Stripe configuration settings.
type Stripe struct {
	SecretKey     string `mapstructure:"secret_key"     mask:"password"`
	WebhookSecret string `mapstructure:"webhook_secret" mask:"password"`
	SuccessURL    string `mapstructure:"success_url"    validate:"omitempty,url"`
	CancelURL     string `mapstructure:"cancel_url"     validate:"omitempty,url"`
	Currency      string `mapstructure:"currency"       validate:"omitempty,currency"`
}

// Printify configuration settings.
type Printify struct {
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	Token      string        `mapstructure:"token"    mask:"password"`
	ShopID     string        `mapstructure:"shop_id"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
}

// Docs configuration settings.
type Docs struct {
	// Dir is the directory of markdown documents served under /api/docs.
	Dir string `mapstructure:"dir"`
}
