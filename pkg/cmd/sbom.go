package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/bom"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/tasks"
)

var sbomCmd = &cobra.Command{
	Use:   "sbom [recipe dir]",
	Short: "Create a CycloneDX SBOM for a recipe bundle",
	Long: `Create a CycloneDX SBOM describing the recipe bundle and the third-party artifacts it
repackages, including the license, CQ and license strategy decided for each artifact.

With --artifacts the directory is searched for the artifact files to record their SHA-256 hashes.`,
	Args: cobra.MaximumNArgs(1),
	Run:  SBOMCommand,
}

func init() {
	rootCmd.AddCommand(sbomCmd)
	sbomCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	sbomCmd.Flags().String("artifacts", "", "Directory containing the artifact files to hash (e.g. target/dependency)")
}

func SBOMCommand(cmd *cobra.Command, args []string) {
	flagOutput, _ := cmd.Flags().GetString("output")
	flagArtifacts, _ := cmd.Flags().GetString("artifacts")

	recipe := loadRecipe(cmd, args)

	_, decisions, err := tasks.Decide(recipe)
	if err != nil {
		log.Fatal("failed to decide licenses", "recipe", recipe.Dir, "err", err)
	}

	result, err := bom.GenerateCycloneDX(recipe.Project, decisions, bom.Options{ArtifactsDir: flagArtifacts})
	if err != nil {
		log.Fatal("failed to create SBOM", "recipe", recipe.Dir, "err", err)
	}

	if err := bom.WriteFile(result, flagOutput); err != nil {
		log.Fatal("failed to write SBOM", "err", err)
	}

	if flagOutput != "" {
		log.Infof("Wrote SBOM with %d components to %s", len(*result.Components), flagOutput)
	}
}
