package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/transheet/internal/engine"
)

var inspectExt string

var inspectCmd = &cobra.Command{
	Use:   "inspect <docs-dir>",
	Short: "Summarize the translation documents in a directory",
	Long: `Show the domains and locales found in <docs-dir>, how many values each
document holds, and which locales a domain is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Inspect(context.Background(), &engine.InspectRequest{
			DocsDir:   args[0],
			Extension: inspectExt,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		out := newReport(cmd)
		out.section(fmt.Sprintf("Documents in %s", result.Dir))
		if len(result.Domains) == 0 {
			out.empty("No documents found")
			out.skipped(result.Skipped)
			return nil
		}

		headers := append([]string{"DOMAIN", "IDS"}, result.Locales...)
		rows := make([][]string, 0, len(result.Domains))
		for _, d := range result.Domains {
			row := []string{d.Domain, strconv.Itoa(d.IDs)}
			for _, locale := range result.Locales {
				if n, ok := d.Locales[locale]; ok {
					row = append(row, strconv.Itoa(n))
				} else {
					row = append(row, "-")
				}
			}
			rows = append(rows, row)
		}
		out.table(headers, rows)

		for _, d := range result.Domains {
			if len(d.Missing) > 0 {
				out.warn("%s has no document for %s", d.Domain, strings.Join(d.Missing, ", "))
			}
		}
		out.skipped(result.Skipped)
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectExt, "ext", "", "Document extension (default from settings, \"yaml\")")
}
