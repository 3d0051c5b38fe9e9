package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/transheet/internal/engine"
	"github.com/danieljhkim/transheet/internal/planner"
)

var (
	importEmpty  bool
	importExt    string
	importSheet  string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <table-file> <out-dir>",
	Short: "Convert a table into per-domain, per-locale translation documents",
	Long: `Read a table with the columns domain, id and one column per locale, and write
one <domain>.<locale>.<ext> document per domain and locale into <out-dir>.

The id column holds dot-separated keys ("home.title") that become nested keys in
the documents. Empty cells are left out unless --empty is given; a domain and
locale with no values at all produces no document. When two rows share an id the
first one wins.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		includeEmpty := importEmpty
		if !cmd.Flags().Changed("empty") {
			includeEmpty = eng.Settings().Import.IncludeEmpty
		}

		result, err := eng.Import(context.Background(), &engine.ImportRequest{
			TablePath:    args[0],
			OutDir:       args[1],
			IncludeEmpty: includeEmpty,
			Extension:    importExt,
			Sheet:        importSheet,
			DryRun:       importDryRun,
		})
		out := newReport(cmd)
		if err != nil {
			if result != nil {
				out.conflicts(result.Plan)
				if len(result.Applied) > 0 {
					out.warn("Written before the failure:")
					out.list(writtenPaths(result.Applied))
				}
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.ShapeConflicts > 0 {
			out.warn("Dropped %s: the id is both a value and a group of keys, see the log for details",
				count(result.ShapeConflicts, "value"))
		}
		if result.Duplicates > 0 {
			out.warn("Ignored %s repeating an earlier id", count(result.Duplicates, "value"))
		}

		if importDryRun {
			out.section("Dry Run")
			writes := result.Plan.Writes()
			out.line("Would write %s", count(len(writes), "document"))
			out.list(writtenPaths(writes))
		} else {
			out.done("Imported %s into %s", count(result.Rows, "row"), args[1])
			out.field("Written", count(len(result.Applied), "document"))
			out.field("Unchanged", count(len(result.Unchanged), "document"))
		}

		if len(result.Gated) > 0 {
			out.note("No values (no document written):")
			gated := make([]string, 0, len(result.Gated))
			for _, g := range result.Gated {
				gated = append(gated, g.Domain+"/"+g.Locale)
			}
			out.list(gated)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importEmpty, "empty", false, "Keep empty cells as empty strings (default from settings)")
	importCmd.Flags().StringVar(&importExt, "ext", "", "Document extension (default from settings, \"yaml\")")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "Worksheet name for XLSX tables")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be written without writing")
}

func writtenPaths(ops []planner.Operation) []string {
	paths := make([]string, 0, len(ops))
	for _, op := range ops {
		paths = append(paths, op.DestPath)
	}
	return paths
}
