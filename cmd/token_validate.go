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

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/cli"
)

// TokenValidator parses and validates JWT tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// tokenValidateCmd represents the tokenValidate command.
var tokenValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a token for authenticity and claims",
	Long: `Validate a token by checking its signature, expiration and claims, then
print the permissions it resolves to.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Security.SigningKey
		tokenString, _ := cmd.Flags().GetString("token")

		var tm TokenValidator = authtoken.New(logger)
		claims, err := tm.Validate(tokenString, signingKey)
		if err != nil {
			logFatal("failed to validate token", err)
		}

		perms := authtoken.ResolvePermissions(
			claims.Roles,
			claims.Permissions,
			customRolePermissions(),
		)
		granted := make([]string, 0, len(perms))
		for _, p := range authtoken.AllPermissions {
			if perms[p] {
				granted = append(granted, p)
			}
		}

		fmt.Println()
		cli.PrintKV(os.Stdout, "Subject", claims.Subject, "Roles", strings.Join(claims.Roles, ", "))
		cli.PrintKV(os.Stdout, "Audience", strings.Join(claims.Audience, ", "),
			"Session", strconv.FormatBool(claims.SessionBound))
		cli.PrintKV(os.Stdout, "Issued", claims.IssuedAt.Format(time.RFC3339),
			"Expires", claims.ExpiresAt.Format(time.RFC3339),
		)
		cli.PrintKV(os.Stdout, "Permissions", strings.Join(granted, ", "))
	},
}

func customRolePermissions() map[string][]string {
	roles := make(map[string][]string, len(appConfig.API.Security.Roles))
	for name, role := range appConfig.API.Security.Roles {
		roles[name] = role.Permissions
	}

	return roles
}

func init() {
	tokenCmd.AddCommand(tokenValidateCmd)

	tokenValidateCmd.PersistentFlags().StringP("token", "t", "", "The Token string")

	_ = tokenValidateCmd.MarkPersistentFlagRequired("token")
}
