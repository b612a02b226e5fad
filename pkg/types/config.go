package types

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up next to the recipe pom.xml.
const ConfigFileName = "ebr.yaml"

const (
	DefaultIpLogDirectory = "src/eclipse"
	DefaultAboutFilesDir  = "src/main/resources/about_files"
)

type RecipeConfig struct {
	// LicenseMappings maps an artifactId (or groupId:artifactId) to the name of a known license.
	LicenseMappings map[string]string `yaml:"licenseMappings,omitempty"`
	// LocalLicenseFiles maps a license name to a file inside AboutFilesDir.
	LocalLicenseFiles   map[string]string `yaml:"localLicenseFiles,omitempty"`
	ExcludeDependencies []string          `yaml:"excludeDependencies,omitempty"`
	Repositories        []string          `yaml:"repositories,omitempty"`
	AboutFilesDir       string            `yaml:"aboutFilesDir,omitempty"`
	IpLog               IpLogConfig       `yaml:"ipLog,omitempty"`
}

type IpLogConfig struct {
	Directory        string `yaml:"directory,omitempty"`
	FailIfIncomplete *bool  `yaml:"failIfIncomplete,omitempty"`
	Force            bool   `yaml:"force,omitempty"`
}

func DefaultConfig() RecipeConfig {
	return RecipeConfig{
		AboutFilesDir: DefaultAboutFilesDir,
		IpLog: IpLogConfig{
			Directory: DefaultIpLogDirectory,
		},
	}
}

// Strict reports whether an incomplete ip_log.xml must fail verification (default true).
func (c RecipeConfig) Strict() bool {
	if c.IpLog.FailIfIncomplete == nil {
		return true
	}
	return *c.IpLog.FailIfIncomplete
}

// ExcludePatterns flattens entries that contain comma separated lists.
func (c RecipeConfig) ExcludePatterns() []string {
	var patterns []string
	for _, entry := range c.ExcludeDependencies {
		for _, token := range strings.Split(entry, ",") {
			if token = strings.TrimSpace(token); token != "" {
				patterns = append(patterns, token)
			}
		}
	}
	return patterns
}

func LoadConfig(config *RecipeConfig, filename string) error {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(bs, config)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

// LoadRecipeConfig reads ebr.yaml from the recipe directory (if present) on top of the defaults
// and applies environment overrides.
func LoadRecipeConfig(recipeDir string, filename string) (RecipeConfig, error) {
	config := DefaultConfig()

	// only the default ebr.yaml is optional
	optional := filename == ""
	if optional {
		filename = filepath.Join(recipeDir, ConfigFileName)
	}

	err := LoadConfig(&config, filename)
	if err != nil && !(optional && errors.Is(err, fs.ErrNotExist)) {
		return config, err
	}

	if config.AboutFilesDir == "" {
		config.AboutFilesDir = DefaultAboutFilesDir
	}
	if config.IpLog.Directory == "" {
		config.IpLog.Directory = DefaultIpLogDirectory
	}

	loadEnvironmentConfig(&config)

	return config, nil
}

func loadEnvironmentConfig(config *RecipeConfig) {
	if repository := os.Getenv("EBR_REPOSITORY"); repository != "" {
		config.Repositories = append(filepath.SplitList(repository), config.Repositories...)
	}

	if force, err := strconv.ParseBool(os.Getenv("EBR_FORCE")); err == nil {
		config.IpLog.Force = force
	}
}
