package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/transheet/internal/engine"
	"github.com/danieljhkim/transheet/internal/planner"
)

// fatih/color turns these off when stdout is not a terminal.
var (
	okColor    = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgBlue, color.Bold)
	noteColor  = color.New(color.FgCyan)
	keyColor   = color.New(color.FgWhite, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// report writes the human-readable output of one command run. Results go to
// the command's output, conflicts to its error stream.
type report struct {
	out io.Writer
	err io.Writer
}

func newReport(cmd *cobra.Command) *report {
	return &report{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

func (r *report) section(title string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = titleColor.Fprintf(r.out, "▸ %s\n\n", title)
}

func (r *report) done(format string, args ...any) {
	_, _ = okColor.Fprintf(r.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (r *report) warn(format string, args ...any) {
	_, _ = warnColor.Fprintf(r.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}

func (r *report) line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *report) note(text string) {
	_, _ = noteColor.Fprintf(r.out, "  %s\n", text)
}

func (r *report) field(label, value string) {
	_, _ = keyColor.Fprintf(r.out, "  %s: ", label)
	_, _ = dimColor.Fprintln(r.out, value)
}

func (r *report) list(items []string) {
	for _, item := range items {
		_, _ = noteColor.Fprintf(r.out, "    • %s\n", item)
	}
}

func (r *report) empty(msg string) {
	_, _ = dimColor.Fprintf(r.out, "  %s\n", msg)
}

// table lays out rows under headers. Widths count runes, so locale values
// with accents line up.
func (r *report) table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	cells := func(c *color.Color, values []string) {
		_, _ = fmt.Fprint(r.out, " ")
		for i, w := range widths {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			_, _ = c.Fprintf(r.out, " %-*s", w, v)
		}
		_, _ = fmt.Fprintln(r.out)
	}

	cells(titleColor, headers)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	cells(dimColor, rules)
	for _, row := range rows {
		cells(dimColor, row)
	}
}

// skipped lists documents that were left out of a conversion.
func (r *report) skipped(docs []engine.SkippedDocument) {
	for _, doc := range docs {
		r.warn("Skipped %s: %s", doc.Path, doc.Reason)
	}
}

// conflicts reports why a plan could not be executed.
func (r *report) conflicts(plan *planner.WritePlan) {
	if plan == nil || !plan.HasConflicts() {
		return
	}
	_, _ = titleColor.Fprintf(r.err, "▸ %s\n", "Conflicts detected")
	for _, c := range plan.Conflicts {
		_, _ = errorColor.Fprintf(r.err, "✗ %s: %s\n", c.Path, c.Reason)
	}
}

// count renders "1 document", "3 documents".
func count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
