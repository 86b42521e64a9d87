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

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/retr0h/storefront/internal/audit"
)

// Theme colors for terminal output.
var (
	Purple = lipgloss.Color("99")
	Gray   = lipgloss.Color("245")
	White  = lipgloss.Color("15")
	Teal   = lipgloss.Color("#06ffa5")
	Amber  = lipgloss.Color("214")
	Red    = lipgloss.Color("196")
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle  = lipgloss.NewStyle().Foreground(Teal)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	evenStyle   = lipgloss.NewStyle().Foreground(Teal)
	oddStyle    = lipgloss.NewStyle().Foreground(White)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// Section is a titled table.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// compactMaxColWidth is the widest a column grows before cells are cut.
const compactMaxColWidth = 40

// colGap separates columns.
const colGap = 2

// PrintCompactTable renders sections as kubectl-style aligned tables.
// Multi-line cells are flattened and long cells end in an ellipsis.
func PrintCompactTable(
	w io.Writer,
	sections []Section,
) {
	for _, section := range sections {
		if section.Title != "" {
			_, _ = fmt.Fprintf(w, "\n  %s:\n", headerStyle.Render(section.Title))
		} else {
			_, _ = fmt.Fprintln(w)
		}

		rows := make([][]string, len(section.Rows))
		for r, row := range section.Rows {
			flat := make([]string, len(row))
			for c, cell := range row {
				flat[c] = strings.Join(strings.Fields(cell), " ")
			}
			rows[r] = flat
		}

		widths := columnWidths(section.Headers, rows)

		var hdr strings.Builder
		hdr.WriteString("  ")
		for i, h := range section.Headers {
			hdr.WriteString(headerStyle.Render(pad(strings.ToUpper(h), widths[i], i == len(widths)-1)))
		}
		_, _ = fmt.Fprintln(w, hdr.String())

		for r, row := range rows {
			style := evenStyle
			if r%2 != 0 {
				style = oddStyle
			}

			var line strings.Builder
			line.WriteString("  ")
			for i := range section.Headers {
				cell := ""
				if i < len(row) {
					cell = truncate(row[i], widths[i])
				}
				line.WriteString(style.Render(pad(cell, widths[i], i == len(widths)-1)))
			}
			_, _ = fmt.Fprintln(w, line.String())
		}
	}
}

func columnWidths(
	headers []string,
	rows [][]string,
) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	for i := range widths {
		widths[i] = min(widths[i], compactMaxColWidth)
	}

	return widths
}

func pad(
	s string,
	width int,
	last bool,
) string {
	if last {
		return s
	}

	return fmt.Sprintf("%-*s", width+colGap, s)
}

func truncate(
	s string,
	width int,
) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}

// PrintKV prints label/value pairs on one indented line. Arguments
// alternate between labels and values.
func PrintKV(
	w io.Writer,
	pairs ...string,
) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return
	}

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, labelStyle.Render(pairs[i]+":")+" "+valueStyle.Render(pairs[i+1]))
	}

	_, _ = fmt.Fprintln(w, "  "+strings.Join(parts, "    "))
}

// FormatAge formats a duration as "3d 4h", "12h 30m", "45m" or "30s".
func FormatAge(
	d time.Duration,
) string {
	if d <= 0 {
		return ""
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// StatusStyle colours an audit status.
func StatusStyle(
	status audit.Status,
) lipgloss.Style {
	switch status {
	case audit.StatusFailure:
		return lipgloss.NewStyle().Foreground(Red)
	case audit.StatusWarning:
		return lipgloss.NewStyle().Foreground(Amber)
	default:
		return lipgloss.NewStyle().Foreground(Teal)
	}
}

// AuditSection lays records out as a table, newest first as given.
func AuditSection(
	records []audit.Record,
	now time.Time,
) Section {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		user := r.UserID
		if user == "" {
			user = "-"
		}

		entity := r.EntityType
		if r.EntityID != "" {
			entity += "/" + r.EntityID
		}

		rows = append(rows, []string{
			r.ID,
			FormatAge(now.Sub(r.CreatedAt)),
			string(r.Action),
			entity,
			user,
			string(r.Status),
			string(r.Severity),
		})
	}

	return Section{
		Title:   "Audit Log",
		Headers: []string{"id", "age", "action", "entity", "user", "status", "severity"},
		Rows:    rows,
	}
}
