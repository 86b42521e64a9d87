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

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/database"
)

// auditCmd represents the audit command.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and export the audit log",
	Long: `Read the audit log straight from the configured backend (Postgres or
NATS KV), without going through the API.
`,
}

// openCLIAuditStore opens the configured audit backend and returns a func
// releasing its connections.
func openCLIAuditStore(
	cmd *cobra.Command,
) (audit.Store, func()) {
	if appConfig.Audit.Backend == config.AuditBackendNATS {
		nc := connectNATS()

		return openAuditStore(nil, nc), nc.Close
	}

	db, err := database.Open(cmd.Context(), appConfig.Database)
	if err != nil {
		logFatal("failed to open database", err)
	}

	return openAuditStore(db, nil), func() { _ = db.Close() }
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
