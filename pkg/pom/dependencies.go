package pom

import (
	"cmp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

const ScopeCompile = "compile"

// FilterDependencies keeps the direct dependencies that are bundled into a recipe: compile scope,
// on the class path and not excluded. Exclude patterns match artifactIds and may use globs
// (e.g. "slf4j-*").
func FilterDependencies(dependencies []Dependency, excludes []string) []Dependency {
	var included []Dependency
	for _, d := range dependencies {
		if isExcluded(d, excludes) {
			log.Debugf("Dependency '%s' excluded per configuration.", d.ArtifactID)
			continue
		}
		if !d.AddedToClasspath() {
			log.Debugf("Dependency '%s' not part of classpath.", d.ArtifactID)
			continue
		}
		if d.EffectiveScope() != ScopeCompile {
			log.Debugf("Dependency '%s' scope is not compile.", d.ArtifactID)
			continue
		}
		log.Debugf("Dependency '%s' allowed.", d.ArtifactID)
		included = append(included, d)
	}
	return included
}

func isExcluded(d Dependency, excludes []string) bool {
	for _, pattern := range excludes {
		if pattern == d.ArtifactID || pattern == d.Key() {
			return true
		}
		if matched, err := doublestar.Match(pattern, d.ArtifactID); err == nil && matched {
			return true
		} else if err != nil {
			log.Warn("invalid exclude pattern", "pattern", pattern, "err", err)
		}
	}
	return false
}

// SortDependencies orders dependencies by groupId, artifactId, version and classifier.
func SortDependencies(dependencies []Dependency) {
	slices.SortStableFunc(dependencies, func(a, b Dependency) int {
		return cmp.Or(
			cmp.Compare(a.GroupID, b.GroupID),
			cmp.Compare(a.ArtifactID, b.ArtifactID),
			cmp.Compare(a.Version, b.Version),
			cmp.Compare(a.Classifier, b.Classifier),
		)
	})
}
