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
package authtoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/retr0h/storefront/internal/validation"
)

// ErrForeignIssuer is returned for a correctly signed token that was not
// minted by this service.
var ErrForeignIssuer = errors.New("token issuer is not " + Issuer)

// signingMethods are the only algorithms Generate produces, so they are the
// only ones Validate accepts.
var signingMethods = []string{jwt.SigningMethodHS256.Alg()}

// Validate verifies the signature, lifetime and issuer of tokenString and
// checks that its claims carry at least one role.
func (t *Token) Validate(
	tokenString string,
	signingKey string,
) (*CustomClaims, error) {
	claims := &CustomClaims{}
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(signingKey), nil
	}

	if _, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		keyFunc,
		jwt.WithValidMethods(signingMethods),
	); err != nil {
		return nil, err
	}

	if !claims.VerifyIssuer(Issuer, true) {
		return nil, fmt.Errorf("%w: got %q", ErrForeignIssuer, claims.Issuer)
	}

	if errMsg, ok := validation.Struct(claims); !ok {
		return nil, fmt.Errorf("invalid claims: %s", errMsg)
	}

	return claims, nil
}
