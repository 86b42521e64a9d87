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

// Package authtoken issues and verifies the signed tokens that carry a
// user's roles, and resolves roles to permissions.
package authtoken

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Issuer is the iss claim of every token.
const Issuer = "storefront"

// DefaultTTL is the token lifetime when none is given.
const DefaultTTL = 24 * time.Hour

// RoleHierarchy ranks the built-in roles.
var RoleHierarchy = map[string]int{
	RoleCustomer: 1,
	RoleStaff:    2,
	RoleAdmin:    3,
}

// CustomClaims are the claims carried by a token.
type CustomClaims struct {
	Roles       []string `json:"roles"                 validate:"required,min=1,dive,required"`
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,dive,required"`
	// SessionBound tokens are only valid while their login session is.
	SessionBound bool `json:"sess,omitempty"`
	jwt.RegisteredClaims
}

// Token issues and validates tokens.
type Token struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Token.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
		now:    time.Now,
	}
}

type generateOptions struct {
	ttl          time.Duration
	permissions  []string
	sessionBound bool
}

// GenerateOption adjusts a generated token.
type GenerateOption func(*generateOptions)

// WithTTL sets the token lifetime.
func WithTTL(
	ttl time.Duration,
) GenerateOption {
	return func(o *generateOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithPermissions embeds permissions that override role expansion.
func WithPermissions(
	permissions ...string,
) GenerateOption {
	return func(o *generateOptions) {
		o.permissions = permissions
	}
}

// WithSession marks the token as belonging to a login session.
func WithSession() GenerateOption {
	return func(o *generateOptions) {
		o.sessionBound = true
	}
}

// Generate signs a token for subject with roles. Every token gets a unique
// id so two logins in the same second never share a session key.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
	opts ...GenerateOption,
) (string, error) {
	o := generateOptions{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}

	now := t.now()
	claims := CustomClaims{
		Roles:        roles,
		Permissions:  o.permissions,
		SessionBound: o.sessionBound,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(o.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	t.logger.Debug(
		"generated token",
		slog.String("subject", subject),
		slog.Any("roles", roles),
		slog.Time("expires_at", claims.ExpiresAt.Time),
	)

	return signed, nil
}

// GenerateAllowedRoles returns the role names of a hierarchy, lowest rank
// first.
func GenerateAllowedRoles(
	hierarchy map[string]int,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for role := range hierarchy {
		roles = append(roles, role)
	}

	sort.Slice(roles, func(i, j int) bool {
		return hierarchy[roles[i]] < hierarchy[roles[j]]
	})

	return roles
}
