package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/transheet/internal/engine"
)

var (
	exportExt    string
	exportSheet  string
	exportDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export <docs-dir> <table-file>",
	Short: "Convert a directory of translation documents into one table",
	Long: `Read every <domain>.<locale>.<ext> document in <docs-dir> and write one table
with the columns domain, id and one column per locale.

Documents that cannot be parsed are reported and skipped. A document whose name
does not have exactly two parts before the extension fails the export.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Export(context.Background(), &engine.ExportRequest{
			DocsDir:   args[0],
			TablePath: args[1],
			Extension: exportExt,
			Sheet:     exportSheet,
			DryRun:    exportDryRun,
		})
		out := newReport(cmd)
		if err != nil {
			if result != nil {
				out.conflicts(result.Plan)
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		out.skipped(result.Skipped)

		summary := fmt.Sprintf("%s, %s, %s",
			count(len(result.Documents), "document"),
			count(len(result.Locales), "locale"),
			count(result.Rows, "row"))

		switch {
		case exportDryRun:
			out.section("Dry Run")
			out.line("Would write %s (%s)", result.TablePath, summary)
		case result.Written:
			out.done("Exported %s to %s", summary, result.TablePath)
		default:
			out.done("%s is up to date (%s)", result.TablePath, summary)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportExt, "ext", "", "Document extension (default from settings, \"yaml\")")
	exportCmd.Flags().StringVar(&exportSheet, "sheet", "", "Worksheet name for XLSX tables")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Show what would be written without writing")
}
