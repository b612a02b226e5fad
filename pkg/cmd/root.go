package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/tasks"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   types.DefaultToolName,
	Short: "License matching and ip_log.xml maintenance for Eclipse Bundle Recipes",
	Long: `Maps the licenses declared by third-party Maven artifacts to the licenses known to the
Eclipse Foundation IP database and keeps a recipe's ip_log.xml in sync with its dependencies.

Recipe settings (license mappings, local license files, excluded dependencies, repositories)
are read from ebr.yaml next to the recipe pom.xml.`,
	Version: types.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// setup logging
		if silent, _ := cmd.Flags().GetBool("silent"); silent {
			log.SetQuiet()
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetDebug(true)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", types.Version, types.Commit, types.Date)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().String("config", "", "Recipe configuration file (default: <recipe>/ebr.yaml)")
}

// recipeDir returns the recipe directory argument, defaulting to the working directory.
func recipeDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func loadConfig(cmd *cobra.Command, dir string) types.RecipeConfig {
	flagConfig, _ := cmd.Flags().GetString("config")

	config, err := types.LoadRecipeConfig(dir, flagConfig)
	if err != nil {
		log.Fatal("failed to load configuration", "dir", dir, "err", err)
	}
	return config
}

func loadRecipe(cmd *cobra.Command, args []string) *tasks.Recipe {
	dir := recipeDir(args)
	config := loadConfig(cmd, dir)
	silent, _ := cmd.Flags().GetBool("silent")

	recipe, err := tasks.LoadRecipe(dir, config, silent)
	if err != nil {
		log.Fatal("failed to load recipe", "dir", dir, "err", err)
	}
	return recipe
}
