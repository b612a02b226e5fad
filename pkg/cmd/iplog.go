package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/iplog"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/tasks"
)

var iplogCmd = &cobra.Command{
	Use:   "iplog",
	Short: "Generate and verify a recipe's ip_log.xml",
}

var iplogGenerateCmd = &cobra.Command{
	Aliases: []string{"gen"},
	Use:     "generate [recipe dir]",
	Short:   "Generate ip_log.xml from the recipe's dependencies",
	Long: `Generate the recipe's ip_log.xml from its direct third-party dependencies.

CQ numbers, license decisions, project info, contacts and notes recorded in an existing
ip_log.xml are preserved. Newly added dependencies are appended, removed ones are dropped.
An existing file is only replaced with --force (or EBR_FORCE=true).`,
	Args: cobra.MaximumNArgs(1),
	Run:  IpLogGenerateCommand,
}

var iplogVerifyCmd = &cobra.Command{
	Use:   "verify [recipe dir]",
	Short: "Verify that ip_log.xml is complete",
	Long: `Verify that the recipe's ip_log.xml has contact information and a CQ, license name and
license reference for every package. With --strict (the default unless ipLog.failIfIncomplete
is false in ebr.yaml) an incomplete file fails the command.`,
	Args: cobra.MaximumNArgs(1),
	Run:  IpLogVerifyCommand,
}

var iplogLicenseCmd = &cobra.Command{
	Use:   "license [recipe dir]",
	Short: "Print the license of a single-artifact recipe",
	Args:  cobra.MaximumNArgs(1),
	Run:   IpLogLicenseCommand,
}

func init() {
	rootCmd.AddCommand(iplogCmd)
	iplogCmd.AddCommand(iplogGenerateCmd)
	iplogCmd.AddCommand(iplogVerifyCmd)
	iplogCmd.AddCommand(iplogLicenseCmd)

	iplogGenerateCmd.Flags().BoolP("force", "f", false, "Overwrite an existing ip_log.xml")
	iplogGenerateCmd.Flags().Bool("summary", true, "Print the license decisions")
	iplogVerifyCmd.Flags().Bool("strict", true, "Fail if ip_log.xml is incomplete")
}

func IpLogGenerateCommand(cmd *cobra.Command, args []string) {
	flagForce, _ := cmd.Flags().GetBool("force")
	flagSummary, _ := cmd.Flags().GetBool("summary")

	recipe := loadRecipe(cmd, args)

	log.Infof("Generating ip_log.xml for %s", recipe.Project.ArtifactID)

	result, err := tasks.Reconcile(recipe, flagForce)
	if err != nil {
		log.Fatal("failed to generate ip_log.xml", "recipe", recipe.Dir, "err", err)
	}

	if flagSummary {
		fmt.Println()
		renderDecisions(os.Stdout, result.Decisions)
		fmt.Println()
	}

	if result.Written {
		log.Infof("Wrote %s", result.Path)
	}
	if len(result.Problems) > 0 {
		log.Warnf("ip_log.xml is incomplete (%d problems). Run 'ebr iplog verify' after filling in the missing information.", len(result.Problems))
	}
}

func IpLogVerifyCommand(cmd *cobra.Command, args []string) {
	dir := recipeDir(args)
	config := loadConfig(cmd, dir)

	strict := config.Strict()
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}

	recipe := &tasks.Recipe{Dir: dir, Config: config}
	path := recipe.IpLogPath()

	err := iplog.VerifyFile(path, strict)
	var incomplete *iplog.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		for _, problem := range incomplete.Problems {
			log.Error(problem)
		}
		log.Fatalf("Verification of %s failed with %d problems", path, len(incomplete.Problems))
	case err != nil:
		log.Fatal("failed to verify ip_log.xml", "path", path, "err", err)
	}

	log.Infof("Verified %s", path)
}

func IpLogLicenseCommand(cmd *cobra.Command, args []string) {
	dir := recipeDir(args)
	recipe := &tasks.Recipe{Dir: dir, Config: loadConfig(cmd, dir)}

	name, err := iplog.LicenseNameFromFile(recipe.IpLogPath())
	if err != nil {
		log.Fatal("unable to determine license", "path", recipe.IpLogPath(), "err", err)
	}
	fmt.Println(name)
}

func renderDecisions(w io.Writer, decisions []iplog.Decision) {
	isTerminalWriter := IsTerminalWriter(w)

	t := newTableWriter(w, isTerminalWriter)
	t.SetHeaders("Package", "CQ", "License", "Strategy")
	for _, d := range decisions {
		t.AddRow(d.Entry.Package(), d.CQ, d.LicenseName(), colorizeStrategy(d.Strategy, isTerminalWriter))
	}

	_, _ = fmt.Fprintf(w, " -- %s --\n", iplog.FileName)
	t.Render()
}
