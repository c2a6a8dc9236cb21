package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

var (
	buildWatch  bool
	buildDetail bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the document and run the typesetting toolchain",
	Long: `Generates the document source and compiles it in three passes:
typesetter, index builder, typesetter again, so the index is populated.

The toolchain commands are configured with the toolchain.* settings.
With --watch the document is rebuilt whenever a raw data or bio file changes.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild when input files change")
	buildCmd.Flags().BoolVar(&buildDetail, "detail", false, "List every issue under its file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}

	once := func(ctx context.Context) error {
		result, err := pipeline.Build(ctx)
		if err != nil {
			printCompileError(cmd, err)
			return fmt.Errorf("build failed: %w", err)
		}
		printSummary(cmd.OutOrStdout(), result.Report.Summary, buildDetail)
		cmd.Printf("\nDocument written to %s (%d teachers, %d students).\n",
			result.OutputPath, result.Model.Len(), result.Model.StudentCount())
		printMissingBios(cmd, result.Report.MissingBios)

		size := ""
		if info, statErr := os.Stat(result.ArtifactPath); statErr == nil {
			size = fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
		}
		st := NewStyles(cmd.OutOrStdout(), nil)
		cmd.Println(st.Success.Render(fmt.Sprintf("Built %s%s", result.ArtifactPath, size)))
		cmd.Printf("Passes: %s\n", strings.Join(result.Passes, " -> "))
		printRunFooter(cmd.OutOrStdout(), result.Report)
		return nil
	}

	if !buildWatch {
		return once(cmd.Context())
	}
	return watch(cmd, once)
}

// printCompileError writes the failing stage and tool output to stderr.
func printCompileError(cmd *cobra.Command, err error) {
	var compileErr *domain.CompileError
	if !errors.As(err, &compileErr) {
		return
	}
	st := NewStyles(cmd.ErrOrStderr(), nil)
	cmd.PrintErrln(st.Error.Render(fmt.Sprintf("%s stage failed (%s)", compileErr.Stage, compileErr.Tool)))
	if out := strings.TrimSpace(compileErr.Output); out != "" {
		cmd.PrintErrln(st.Box.Render(out))
	}
}
