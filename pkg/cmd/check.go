package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/tasks"
)

var checkCmd = &cobra.Command{
	Use:   "check [recipe dir]",
	Short: "Check the local license files of a recipe",
	Long: `Check that every license file configured in localLicenseFiles exists in the recipe's
about_files directory and that its text is recognized as the configured license.`,
	Args: cobra.MaximumNArgs(1),
	Run:  CheckCommand,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func CheckCommand(cmd *cobra.Command, args []string) {
	recipe := loadRecipe(cmd, args)

	checks, err := tasks.CheckLicenseFiles(recipe)
	if len(checks) > 0 {
		fmt.Println()
		renderFileChecks(os.Stdout, checks)
		fmt.Println()
	} else {
		log.Infof("No local license files configured for %s", recipe.Project.ArtifactID)
	}

	if err != nil {
		log.Fatal("license file check failed", "err", err)
	}
}

func renderFileChecks(w io.Writer, checks []licenses.FileCheck) {
	isTerminalWriter := IsTerminalWriter(w)

	t := newTableWriter(w, isTerminalWriter)
	t.SetHeaders("License", "File", "Expected", "Detected", "Status")
	for _, c := range checks {
		t.AddRow(c.License, c.File, c.Expected, strings.Join(c.Detected, ", "), colorizeFileStatus(c.Status, isTerminalWriter))
	}

	_, _ = fmt.Fprintf(w, " -- Local license files --\n")
	t.Render()
}
