package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

var reportLimit int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect diagnostics of previous runs",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the issues of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

func init() {
	reportListCmd.Flags().IntVarP(&reportLimit, "limit", "n", 20, "Maximum number of runs to list")
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	reports, err := reportService.List(cmd.Context(), reportLimit)
	if err != nil {
		if errors.Is(err, domain.ErrReportStoreUnavailable) {
			cmd.Println("Run reports are not being stored. Enable them with:")
			cmd.Println("  lineage settings set report.persist true")
			return nil
		}
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(reports) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	st := NewStyles(cmd.OutOrStdout(), nil)
	for _, r := range reports {
		cmd.Printf("%s  %-8s  %-14s  %s\n",
			r.ID,
			r.Command,
			humanize.Time(r.StartedAt),
			counts(st, domain.IssueCounts{Warnings: r.Warnings, Errors: r.Errors}),
		)
	}
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	report, err := reportService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		return fmt.Errorf("failed to get report: %w", err)
	}

	cmd.Printf("Run:      %s\n", report.ID)
	cmd.Printf("Command:  %s\n", report.Command)
	cmd.Printf("Started:  %s (%s)\n", report.StartedAt.Format("2006-01-02 15:04:05"), humanize.Time(report.StartedAt))
	cmd.Printf("Records:  %d read, %d accepted\n", report.Records, report.Accepted)
	if report.Teachers > 0 {
		cmd.Printf("Teachers: %d\n", report.Teachers)
	}
	if report.OutputPath != "" {
		cmd.Printf("Output:   %s\n", report.OutputPath)
	}
	if report.ArtifactPath != "" {
		cmd.Printf("Artifact: %s\n", report.ArtifactPath)
	}
	cmd.Println()
	printSummary(cmd.OutOrStdout(), report.Summary, true)
	printMissingBios(cmd, report.MissingBios)
	return nil
}
