package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/logger"
)

var (
	generateWatch  bool
	generateDetail bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the lineage document source",
	Long: `Validates the raw records, groups them by teacher and address,
resolves teacher bios and writes the LaTeX document source.

With --watch the document is regenerated whenever a raw data or bio file changes.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Regenerate when input files change")
	generateCmd.Flags().BoolVar(&generateDetail, "detail", false, "List every issue under its file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}

	once := func(ctx context.Context) error {
		result, err := pipeline.Generate(ctx)
		if err != nil {
			return fmt.Errorf("generate failed: %w", err)
		}
		printSummary(cmd.OutOrStdout(), result.Report.Summary, generateDetail)
		cmd.Printf("\nDocument written to %s (%d teachers, %d students).\n",
			result.OutputPath, result.Model.Len(), result.Model.StudentCount())
		printMissingBios(cmd, result.Report.MissingBios)
		printRunFooter(cmd.OutOrStdout(), result.Report)
		return nil
	}

	if !generateWatch {
		return once(cmd.Context())
	}
	return watch(cmd, once)
}

// watch runs fn now and after every input change until interrupted.
func watch(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	err := pipeline.Watch(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			cmd.PrintErrln(err)
			return err
		}
		return nil
	})
	logger.Debug("Watch stopped")
	return err
}

func printMissingBios(cmd *cobra.Command, missing []string) {
	if len(missing) == 0 {
		return
	}
	st := NewStyles(cmd.OutOrStdout(), nil)
	cmd.Println(st.Warning.Render(fmt.Sprintf("%d teacher(s) without a bio:", len(missing))))
	for _, name := range missing {
		cmd.Printf("  - %s\n", name)
	}
}
