package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

var (
	bioTeacher     string
	bioHometown    string
	bioStudentOf   string
	bioNationality string
)

var bioCmd = &cobra.Command{
	Use:   "bio",
	Short: "Manage teacher bios",
	Long: `Teacher bios supply the hometown, teacher and nationality sentence
printed at the top of each chapter.`,
}

var bioCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bio file for a teacher",
	Long: `Writes a bio file for one teacher. The teacher name must start with a
recognised title, for example "Master Jane Lee".

Values not given as flags are prompted for interactively.`,
	Args: cobra.NoArgs,
	RunE: runBioCreate,
}

var bioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known teacher bios",
	Args:  cobra.NoArgs,
	RunE:  runBioList,
}

func init() {
	bioCreateCmd.Flags().StringVar(&bioTeacher, "teacher", "", "Teacher name including title")
	bioCreateCmd.Flags().StringVar(&bioHometown, "hometown", "", "Teacher's hometown")
	bioCreateCmd.Flags().StringVar(&bioStudentOf, "student-of", "", "Name of the teacher's own teacher")
	bioCreateCmd.Flags().StringVar(&bioNationality, "nationality", "", "Teacher's nationality")

	bioCmd.AddCommand(bioCreateCmd)
	bioCmd.AddCommand(bioListCmd)
	rootCmd.AddCommand(bioCmd)
}

func runBioCreate(cmd *cobra.Command, _ []string) error {
	if bioService == nil {
		return errors.New("bio service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	teacher := prompt(cmd, reader, bioTeacher, fmt.Sprintf("Teacher (one of %s, then name)", joinTitles()))
	bio := domain.Bio{
		Hometown:    prompt(cmd, reader, bioHometown, "Hometown"),
		StudentOf:   prompt(cmd, reader, bioStudentOf, "Student of"),
		Nationality: prompt(cmd, reader, bioNationality, "Nationality"),
	}

	path, err := bioService.Create(cmd.Context(), teacher, bio)
	if err != nil {
		return fmt.Errorf("failed to create bio: %w", err)
	}

	st := NewStyles(cmd.OutOrStdout(), nil)
	cmd.Println(st.Success.Render("Bio written to " + path))
	return nil
}

func runBioList(cmd *cobra.Command, _ []string) error {
	if bioService == nil {
		return errors.New("bio service not configured")
	}

	table, summary, err := bioService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list bios: %w", err)
	}

	if len(table) == 0 {
		cmd.Println("No bios found.")
	} else {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		st := NewStyles(cmd.OutOrStdout(), nil)
		cmd.Printf("Bios (%d):\n\n", len(names))
		for _, name := range names {
			bio := table[name]
			cmd.Println(st.Title.Render(name))
			cmd.Printf("  Hometown:    %s\n", bio.Hometown)
			cmd.Printf("  Student of:  %s\n", bio.StudentOf)
			cmd.Printf("  Nationality: %s\n", bio.Nationality)
		}
	}

	if !summary.Clean() {
		cmd.Println()
		printSummary(cmd.OutOrStdout(), summary, true)
	}
	return nil
}

// prompt returns value when set, otherwise asks for it on the command input.
func prompt(cmd *cobra.Command, reader *bufio.Reader, value, label string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	cmd.Printf("%s: ", label)
	return readLine(reader)
}

func joinTitles() string {
	titles := domain.Titles()
	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
