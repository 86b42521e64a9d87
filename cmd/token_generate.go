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
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/config"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		roles []string,
		subject string,
		opts ...authtoken.GenerateOption,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a new API token with specific roles, subject and lifetime.
Custom roles from the config file are accepted alongside the built-in ones.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Security.SigningKey
		roles, _ := cmd.Flags().GetStringSlice("roles")
		subject, _ := cmd.Flags().GetString("subject")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		opts := []authtoken.GenerateOption{authtoken.WithTTL(ttl)}
		if len(permissions) > 0 {
			opts = append(opts, authtoken.WithPermissions(permissions...))
		}

		var tm TokenGenerator = authtoken.New(logger)
		tokin, err := tm.Generate(signingKey, roles, subject, opts...)
		if err != nil {
			logFatal("failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", tokin),
			slog.String("roles", strings.Join(roles, ",")),
			slog.String("subject", subject),
			slog.Duration("ttl", ttl),
		)
		if len(permissions) > 0 {
			logger.Info(
				"token permissions",
				slog.String("permissions", strings.Join(permissions, ",")),
			)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.PersistentFlags().
		StringSliceP("roles", "r", []string{}, "Roles for the token (built-in: admin, staff, customer)")
	tokenGenerateCmd.PersistentFlags().
		StringP("subject", "u", "", "Subject for the token (e.g., user ID or service name)")
	tokenGenerateCmd.PersistentFlags().
		StringSliceP("permissions", "p", []string{},
			fmt.Sprintf("Direct permissions (overrides role expansion; allowed: %s)",
				strings.Join(authtoken.AllPermissions, ", ")))
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", authtoken.DefaultTTL, "Token lifetime")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("roles")
	_ = tokenGenerateCmd.MarkPersistentFlagRequired("subject")

	tokenGenerateCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		roles, _ := cmd.Flags().GetStringSlice("roles")
		allowed := allowedRoles(appConfig.API.Security.Roles)

		if err := validateRoles(roles, allowed); err != nil {
			logFatal("invalid roles", err, "allowed", allowed)
		}

		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		if err := validatePermissions(permissions); err != nil {
			logFatal("invalid permissions", err, "allowed", authtoken.AllPermissions)
		}
	}
}

// allowedRoles lists the built-in roles followed by configured custom roles.
func allowedRoles(
	custom map[string]config.CustomRole,
) []string {
	allowed := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)
	extra := make([]string, 0, len(custom))
	for name := range custom {
		if !slices.Contains(allowed, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	return append(allowed, extra...)
}

func validateRoles(
	roles []string,
	allowed []string,
) error {
	for _, role := range roles {
		if !slices.Contains(allowed, role) {
			return fmt.Errorf("unsupported role: %s", role)
		}
	}

	return nil
}

func validatePermissions(
	permissions []string,
) error {
	for _, p := range permissions {
		if !slices.Contains(authtoken.AllPermissions, p) {
			return fmt.Errorf("unsupported permission: %s", p)
		}
	}

	return nil
}
