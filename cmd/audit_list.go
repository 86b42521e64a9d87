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
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/cli"
)

var (
	auditListLimit  int
	auditListOffset int
)

// auditListCmd represents the auditList command.
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit log entries",
	Long: `List audit log entries, newest first.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		store, closeFn := openCLIAuditStore(cmd)
		defer closeFn()

		records, total, err := store.List(cmd.Context(), auditListLimit, auditListOffset)
		if err != nil {
			logFatal("failed to list audit records", err)
		}

		if jsonOutput {
			out, err := json.Marshal(map[string]any{"items": records, "totalItems": total})
			if err != nil {
				logFatal("failed to render audit records", err)
			}
			fmt.Println(string(out))

			return
		}

		cli.PrintCompactTable(os.Stdout, []cli.Section{cli.AuditSection(records, time.Now())})

		fmt.Println()
		cli.PrintKV(os.Stdout,
			"Shown", strconv.Itoa(len(records)),
			"Total", strconv.Itoa(total),
		)
		if summary := statusSummary(records); summary != "" {
			fmt.Println("  " + summary)
		}
	},
}

// statusSummary counts records per status, each count in its status colour.
func statusSummary(
	records []audit.Record,
) string {
	counts := map[audit.Status]int{}
	for _, r := range records {
		counts[r.Status]++
	}

	parts := make([]string, 0, 3)
	for _, status := range []audit.Status{audit.StatusSuccess, audit.StatusWarning, audit.StatusFailure} {
		if counts[status] > 0 {
			parts = append(parts, cli.StatusStyle(status).Render(fmt.Sprintf("%s=%d", status, counts[status])))
		}
	}

	return strings.Join(parts, "  ")
}

func init() {
	auditCmd.AddCommand(auditListCmd)

	auditListCmd.Flags().IntVar(&auditListLimit, "limit", 20, "Number of entries to show")
	auditListCmd.Flags().IntVar(&auditListOffset, "offset", 0, "Number of entries to skip")
}
