package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

var mergeDeleteOriginals bool

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Combine raw data files into one",
	Long: `Concatenates every raw data file into a single timestamped file,
dropping exact duplicate lines.

Originals are kept unless --delete-originals is given.`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeDeleteOriginals, "delete-originals", false, "Remove the merged input files")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	result, err := mergeService.Merge(cmd.Context(), mergeDeleteOriginals)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	cmd.Printf("Merged %s into %s\n", english.Plural(len(result.Inputs), "file", ""), result.OutputPath)
	cmd.Printf("  %d lines read, %d written", result.LinesRead, result.LinesWritten)
	if dupes := result.LinesRead - result.LinesWritten; dupes > 0 {
		cmd.Printf(" (%s dropped)", english.Plural(dupes, "duplicate", ""))
	}
	cmd.Println()
	for _, path := range result.Removed {
		cmd.Printf("  removed %s\n", path)
	}
	return nil
}
