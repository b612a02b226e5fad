package licenses

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
)

// Resolver holds the explicit license decisions of a recipe: per artifact overrides and
// locally available license texts.
type Resolver struct {
	*Matcher

	// key is groupId:artifactId
	licensesByArtifact map[string]*knownlicenses.KnownLicense
	licenseFilesByName map[string]string
}

func NewResolver(matcher *Matcher) *Resolver {
	if matcher == nil {
		matcher = NewMatcher(nil)
	}
	return &Resolver{
		Matcher:            matcher,
		licensesByArtifact: map[string]*knownlicenses.KnownLicense{},
		licenseFilesByName: map[string]string{},
	}
}

// SetLicense forces the license of an artifact. The name must resolve to a known license.
func (r *Resolver) SetLicense(d pom.Dependency, name string) error {
	log.Debugf("Using license '%s' for artifact %s", name, d)
	l, err := r.FindKnown(name)
	if err != nil {
		return fmt.Errorf("license mapping for %s: %w", d.Key(), err)
	}
	log.Debugf("Found known license '%s' for license '%s'", l.Name, name)
	r.licensesByArtifact[d.Key()] = l
	return nil
}

// License returns the explicitly configured license of an artifact or nil.
func (r *Resolver) License(d pom.Dependency) *knownlicenses.KnownLicense {
	return r.licensesByArtifact[d.Key()]
}

// ApplyMappings registers configured mappings. Keys are either an artifactId or groupId:artifactId.
// Mappings that match none of the dependencies are reported and ignored.
func (r *Resolver) ApplyMappings(mappings map[string]string, dependencies []pom.Dependency) error {
	keys := maps.Keys(mappings)
	slices.Sort(keys)
	for _, key := range keys {
		matched := false
		for _, d := range dependencies {
			if key != d.ArtifactID && key != d.Key() {
				continue
			}
			matched = true
			if err := r.SetLicense(d, mappings[key]); err != nil {
				return err
			}
		}
		if !matched {
			log.Warnf("License mapping for '%s' does not match any dependency.", key)
		}
	}
	return nil
}

// SetLicenseFile registers a local license text (relative to about_files) for a license name.
func (r *Resolver) SetLicenseFile(name, fileName string) {
	log.Debugf("Using local license file '%s' for license named '%s'", fileName, name)
	r.licenseFilesByName[name] = fileName
}

// LicenseFile returns the local license file for a license name or an empty string.
func (r *Resolver) LicenseFile(name string) string {
	return r.licenseFilesByName[name]
}

// LicenseFiles returns license name to file mappings.
func (r *Resolver) LicenseFiles() map[string]string {
	return maps.Clone(r.licenseFilesByName)
}

// Describe renders a list of declared licenses as "name (url)" pairs.
func Describe(declared []pom.License) string {
	var parts []string
	for _, l := range declared {
		switch {
		case l.URL == "":
			parts = append(parts, l.Name)
		case l.Name == "":
			parts = append(parts, l.URL)
		default:
			parts = append(parts, fmt.Sprintf("%s (%s)", l.Name, l.URL))
		}
	}
	return strings.Join(parts, ", ")
}
