package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var checkDetail bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate raw lineage records",
	Long: `Reads raw record files and validates every line without rendering.

Rejected lines (missing teacher, title, student name or rank) count as errors.
Accepted lines with missing or malformed optional fields count as warnings.
With no arguments every file in the raw data directory is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkDetail, "detail", false, "List every issue under its file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}

	result, err := pipeline.Check(cmd.Context(), args...)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printSummary(cmd.OutOrStdout(), result.Report.Summary, checkDetail)
	cmd.Printf("\n%d of %d records accepted.\n", result.Report.Accepted, result.Report.Records)
	printRunFooter(cmd.OutOrStdout(), result.Report)
	return nil
}
