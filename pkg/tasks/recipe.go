package tasks

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/eclipse-ebr/ebr-cli/pkg/iplog"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// Recipe is a loaded recipe project: its effective model, the third-party dependencies it
// bundles and the license decisions configured for them.
type Recipe struct {
	Dir      string
	Config   types.RecipeConfig
	Project  *pom.Project
	Entries  []iplog.Entry
	Resolver *licenses.Resolver
}

// IpLogPath is the location of the recipe's ip_log.xml.
func (r *Recipe) IpLogPath() string {
	return filepath.Join(r.resolve(r.Config.IpLog.Directory), iplog.FileName)
}

func (r *Recipe) AboutFilesDir() string {
	return r.resolve(r.Config.AboutFilesDir)
}

func (r *Recipe) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Dir, path)
}

// Dependencies returns the bundled dependencies in recipe order.
func (r *Recipe) Dependencies() []pom.Dependency {
	var deps []pom.Dependency
	for _, e := range r.Entries {
		deps = append(deps, e.Dependency)
	}
	return deps
}

// LoadRecipe reads <dir>/pom.xml and the descriptors of its bundled dependencies from the
// configured local repositories.
func LoadRecipe(dir string, config types.RecipeConfig, silent bool) (*Recipe, error) {
	builder := pom.NewModelBuilder(pom.NewLocalRepository(config.Repositories...))

	pomFile := filepath.Join(dir, "pom.xml")
	project, err := builder.LoadFile(pomFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %s: %w", pomFile, err)
	}
	log.Debugf("Loaded recipe %s", project.Coordinates())

	deps := pom.FilterDependencies(project.Dependencies, config.ExcludePatterns())
	pom.SortDependencies(deps)

	recipe := &Recipe{
		Dir:      dir,
		Config:   config,
		Project:  project,
		Resolver: licenses.NewResolver(nil),
	}

	bar := log.NewProgressBar(int64(len(deps)), "Reading dependencies", silent)
	for _, d := range deps {
		model, err := builder.Load(d.GroupID, d.ArtifactID, d.Version)
		switch {
		case errors.Is(err, pom.ErrPOMNotFound):
			log.Warnf("No descriptor found for artifact %s, license information must be configured. %v", d, err)
		case err != nil:
			_ = bar.Finish()
			return nil, fmt.Errorf("failed to load descriptor of %s: %w", d, err)
		}
		recipe.Entries = append(recipe.Entries, iplog.Entry{Dependency: d, Model: model})
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := recipe.Resolver.ApplyMappings(config.LicenseMappings, deps); err != nil {
		return nil, err
	}
	names := maps.Keys(config.LocalLicenseFiles)
	slices.Sort(names)
	for _, name := range names {
		recipe.Resolver.SetLicenseFile(name, config.LocalLicenseFiles[name])
	}

	return recipe, nil
}
