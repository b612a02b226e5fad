package pom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

// MaxParents limits the depth of the parent chain that is followed.
const MaxParents = 10

// ModelBuilder computes effective models by inheriting from parent POMs.
type ModelBuilder struct {
	Repository Repository
}

func NewModelBuilder(repository Repository) *ModelBuilder {
	return &ModelBuilder{Repository: repository}
}

// Load parses the POM of an artifact from the repository and returns its effective model.
func (b *ModelBuilder) Load(groupID, artifactID, version string) (*Project, error) {
	path, err := b.Repository.FindPOM(groupID, artifactID, version)
	if err != nil {
		return nil, err
	}

	project, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	return b.Effective(project, "")
}

// LoadFile parses a POM from disk, parents may be resolved via relativePath.
func (b *ModelBuilder) LoadFile(filename string) (*Project, error) {
	project, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}

	return b.Effective(project, filename)
}

// Effective merges the parent chain into a copy of project and interpolates the result.
// A parent that cannot be found ends the chain with a warning. When path is set, parents are
// first looked up through <relativePath> (default ../pom.xml).
func (b *ModelBuilder) Effective(project *Project, path string) (*Project, error) {
	chain := []*Project{project}

	visited := map[string]struct{}{}
	current := project.Parent
	currentPath := path
	for n := 0; current != nil && n < MaxParents; n++ {
		if current.GroupID == "" || current.ArtifactID == "" || current.Version == "" {
			break
		}
		if _, ok := visited[current.String()]; ok {
			return nil, fmt.Errorf("a cycle of parents is detected at %s", current)
		}
		visited[current.String()] = struct{}{}

		parent, parentPath, err := b.loadParent(*current, currentPath)
		if err != nil {
			if errors.Is(err, ErrPOMNotFound) {
				log.Warn("parent pom not found, inherited values are missing", "project", project.Coordinates(), "parent", current.String())
				break
			}
			return nil, fmt.Errorf("failed to load parent %s: %w", current, err)
		}

		chain = append(chain, parent)
		current = parent.Parent
		currentPath = parentPath
	}

	// fold from the top most parent down to the project itself
	effective := clone(chain[len(chain)-1])
	for i := len(chain) - 2; i >= 0; i-- {
		effective = inherit(effective, chain[i])
	}

	effective.GroupID = effective.EffectiveGroupID()
	effective.Version = effective.EffectiveVersion()

	effective.Interpolate()
	effective.resolveManagedVersions()

	return effective, nil
}

func (b *ModelBuilder) loadParent(parent Parent, childPath string) (*Project, string, error) {
	if childPath != "" {
		if parentPath := parentPOMPath(childPath, parent.RelativePath); parentPath != "" {
			project, err := ParseFile(parentPath)
			if err != nil {
				return nil, "", err
			}
			if project.EffectiveGroupID() == parent.GroupID && project.ArtifactID == parent.ArtifactID && project.EffectiveVersion() == parent.Version {
				return project, parentPath, nil
			}
			log.Debug("relative parent does not match, using repository", "path", parentPath, "parent", parent.String())
		}
	}

	if b.Repository == nil {
		return nil, "", fmt.Errorf("%w: %s (no repository)", ErrPOMNotFound, parent)
	}

	path, err := b.Repository.FindPOM(parent.GroupID, parent.ArtifactID, parent.Version)
	if err != nil {
		return nil, "", err
	}

	project, err := ParseFile(path)
	if err != nil {
		return nil, "", err
	}
	// never resolve relative parents inside a repository
	return project, "", nil
}

func parentPOMPath(childPath, relativePath string) string {
	if relativePath == "" {
		relativePath = "../pom.xml"
	}

	path := filepath.Join(filepath.Dir(childPath), filepath.FromSlash(relativePath))
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if !info.IsDir() {
		return path
	}

	path = filepath.Join(path, "pom.xml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func clone(p *Project) *Project {
	c := *p
	if p.Parent != nil {
		parent := *p.Parent
		c.Parent = &parent
	}
	if p.Organization != nil {
		org := *p.Organization
		c.Organization = &org
	}
	if p.SCM != nil {
		scm := *p.SCM
		c.SCM = &scm
	}
	if p.IssueManagement != nil {
		im := *p.IssueManagement
		c.IssueManagement = &im
	}
	c.Licenses = append([]License(nil), p.Licenses...)
	c.Developers = append([]Developer(nil), p.Developers...)
	c.MailingLists = append([]MailingList(nil), p.MailingLists...)
	c.Dependencies = append([]Dependency(nil), p.Dependencies...)
	c.DependencyManagement = append([]Dependency(nil), p.DependencyManagement...)
	c.Properties = Properties{}
	for k, v := range p.Properties {
		c.Properties[k] = v
	}
	return &c
}

// inherit applies Maven's inheritance rules for the fields this package models. The project
// name and packaging are never inherited; url and scm locations get the child's artifactId appended.
func inherit(parent *Project, child *Project) *Project {
	result := clone(child)

	if result.GroupID == "" {
		result.GroupID = parent.GroupID
	}
	if result.Version == "" {
		result.Version = parent.Version
	}
	if result.Description == "" {
		result.Description = parent.Description
	}
	if result.URL == "" && parent.URL != "" {
		result.URL = appendPath(parent.URL, child.ArtifactID)
	}
	if result.Organization == nil && parent.Organization != nil {
		org := *parent.Organization
		result.Organization = &org
	}
	if len(result.Licenses) == 0 {
		result.Licenses = append([]License(nil), parent.Licenses...)
	}
	if len(result.Developers) == 0 {
		result.Developers = append([]Developer(nil), parent.Developers...)
	}
	if len(result.MailingLists) == 0 {
		result.MailingLists = append([]MailingList(nil), parent.MailingLists...)
	}
	if result.IssueManagement == nil && parent.IssueManagement != nil {
		im := *parent.IssueManagement
		result.IssueManagement = &im
	}
	if parent.SCM != nil {
		if result.SCM == nil {
			result.SCM = &SCM{}
		}
		if result.SCM.Connection == "" && parent.SCM.Connection != "" {
			result.SCM.Connection = appendPath(parent.SCM.Connection, child.ArtifactID)
		}
		if result.SCM.DeveloperConnection == "" && parent.SCM.DeveloperConnection != "" {
			result.SCM.DeveloperConnection = appendPath(parent.SCM.DeveloperConnection, child.ArtifactID)
		}
		if result.SCM.URL == "" && parent.SCM.URL != "" {
			result.SCM.URL = appendPath(parent.SCM.URL, child.ArtifactID)
		}
		if result.SCM.Tag == "" {
			result.SCM.Tag = parent.SCM.Tag
		}
	}

	for k, v := range parent.Properties {
		if _, ok := result.Properties[k]; !ok {
			result.Properties[k] = v
		}
	}

	result.Dependencies = append(result.Dependencies, missingDependencies(result.Dependencies, parent.Dependencies)...)
	result.DependencyManagement = append(result.DependencyManagement, missingDependencies(result.DependencyManagement, parent.DependencyManagement)...)

	return result
}

func missingDependencies(have, candidates []Dependency) []Dependency {
	var missing []Dependency
	for _, c := range candidates {
		found := false
		for _, h := range have {
			if h.Key() == c.Key() && h.Classifier == c.Classifier && h.EffectiveType() == c.EffectiveType() {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, c)
		}
	}
	return missing
}

func appendPath(base, artifactID string) string {
	if artifactID == "" || strings.Contains(base, "${") {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + artifactID
}

// resolveManagedVersions fills in dependency versions (and scopes) from <dependencyManagement>.
func (p *Project) resolveManagedVersions() {
	for i := range p.Dependencies {
		d := &p.Dependencies[i]
		for _, m := range p.DependencyManagement {
			if m.Key() != d.Key() || m.Classifier != d.Classifier || m.EffectiveType() != d.EffectiveType() {
				continue
			}
			if d.Version == "" {
				d.Version = m.Version
			}
			if d.Scope == "" {
				d.Scope = m.Scope
			}
			break
		}
	}
}
