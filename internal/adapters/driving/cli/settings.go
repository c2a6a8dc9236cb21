package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure input paths, document options and the typesetting toolchain.

Use subcommands to change a single setting or pick document options interactively.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting by its dotted key, for example:

  lineage settings set document.order alphabetical
  lineage settings set toolchain.timeout_seconds 300

Run 'lineage settings keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsDocumentCmd = &cobra.Command{
	Use:   "document",
	Short: "Choose document order and missing bio handling",
	Long: `Interactively choose how teachers are ordered and how teachers without
a bio are rendered.`,
	Args: cobra.NoArgs,
	RunE: runSettingsDocument,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsDocumentCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Raw data: %s\n", settings.Paths.RawData)
	cmd.Printf("  Bios: %s\n", settings.Paths.Bios)
	cmd.Printf("  Output: %s\n", settings.Paths.Output)
	dataDir := settings.Paths.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()

	cmd.Println("[Document]")
	cmd.Printf("  Title: %s\n", settings.Document.Title)
	cmd.Printf("  Author: %s\n", settings.Document.Author)
	cmd.Printf("  Order: %s\n", settings.Document.Order.Description())
	cmd.Printf("  Missing bio: %s\n", settings.Document.MissingBio)
	cmd.Println()

	cmd.Println("[Normalise]")
	cmd.Printf("  Title case: %s\n", yesNo(settings.Normalise.TitleCase))
	cmd.Println()

	cmd.Println("[Toolchain]")
	cmd.Printf("  Typesetter: %s\n", settings.Toolchain.Typesetter)
	cmd.Printf("  Indexer: %s\n", settings.Toolchain.Indexer)
	cmd.Printf("  Timeout: %s\n", settings.Toolchain.Timeout)
	cmd.Println()

	cmd.Println("[Report]")
	cmd.Printf("  Persist: %s\n", yesNo(settings.Report.Persist))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsDocument(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Document order:")
	orders := []domain.DocumentOrder{domain.DocumentOrderFirstSeen, domain.DocumentOrderAlphabetical}
	orderDefault := 1
	for i, o := range orders {
		cmd.Printf("  %d. %s\n", i+1, o.Description())
		if o == current.Document.Order {
			orderDefault = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", orderDefault)
	order := orders[parseChoice(readLine(reader), len(orders), orderDefault)-1]
	if err := settingsService.Set("document.order", order.String()); err != nil {
		return fmt.Errorf("failed to set document order: %w", err)
	}
	cmd.Printf("Set document order to: %s\n\n", order.Description())

	cmd.Println("Teachers without a bio:")
	modes := []domain.MissingBioMode{domain.MissingBioPlaceholder, domain.MissingBioOmit}
	modeDefault := 1
	for i, m := range modes {
		cmd.Printf("  %d. %s\n", i+1, m)
		if m == current.Document.MissingBio {
			modeDefault = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", modeDefault)
	mode := modes[parseChoice(readLine(reader), len(modes), modeDefault)-1]
	if err := settingsService.Set("document.missing_bio", mode.String()); err != nil {
		return fmt.Errorf("failed to set missing bio mode: %w", err)
	}
	cmd.Printf("Set missing bio handling to: %s\n", mode)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
