package licenses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

var (
	ErrUnknownLicense   = errors.New("unknown license")
	ErrAmbiguousLicense = errors.New("ambiguous license")
)

// Strategy names how a license was mapped to the catalog.
type Strategy string

const (
	StrategyOverride    Strategy = "override"
	StrategyIpLog       Strategy = "ip-log"
	StrategyExactName   Strategy = "exact-name"
	StrategyURL         Strategy = "url"
	StrategySimilarName Strategy = "similar-name"
	StrategyAmbiguous   Strategy = "ambiguous"
	StrategyNone        Strategy = "none"
)

type Match struct {
	Query      pom.License                                 `json:"query"`
	License    *knownlicenses.KnownLicense                 `json:"license,omitempty"`
	Strategy   Strategy                                    `json:"strategy"`
	Candidates types.SliceSet[*knownlicenses.KnownLicense] `json:"candidates,omitempty"`
}

func (m Match) Found() bool {
	return m.License != nil
}

// Matcher maps declared licenses to the known license catalog.
type Matcher struct {
	catalog *knownlicenses.Catalog
}

func NewMatcher(catalog *knownlicenses.Catalog) *Matcher {
	if catalog == nil {
		catalog = knownlicenses.Default()
	}
	return &Matcher{catalog: catalog}
}

func (m *Matcher) Catalog() *knownlicenses.Catalog {
	return m.catalog
}

// MatchDeclared tries the exact name, then the URL and finally similar names. Several similar
// candidates are never resolved automatically.
func (m *Matcher) MatchDeclared(declared pom.License) Match {
	match := Match{Query: declared, Strategy: StrategyNone}

	if declared.Name != "" {
		if l := m.catalog.ByName(declared.Name); l != nil {
			match.License, match.Strategy = l, StrategyExactName
			return match
		}
	}

	if declared.URL != "" {
		if l := m.catalog.FindByURL(declared.URL); l != nil {
			match.License, match.Strategy = l, StrategyURL
			return match
		}
	}

	if declared.Name != "" {
		similar := m.catalog.FindSimilarByName(declared.Name)
		switch {
		case len(similar) == 1:
			match.License, match.Strategy = similar[0], StrategySimilarName
		case len(similar) > 1:
			log.Warnf("Multiple known licenses found for '%s': %s", declared.Name, strings.Join(similar.Strings(), ", "))
			match.Strategy = StrategyAmbiguous
			match.Candidates = similar
		}
	}

	return match
}

// MatchFirst returns the first declared license that maps to a known license.
func (m *Matcher) MatchFirst(declared []pom.License) (Match, bool) {
	for _, l := range declared {
		match := m.MatchDeclared(l)
		if match.Found() {
			return match, true
		}
		log.Debugf("Found no license similar to '%s (%s)'.", l.Name, l.URL)
	}
	return Match{Strategy: StrategyNone}, false
}

// FindKnown resolves an explicitly configured license name: exact name or exactly one similar name.
func (m *Matcher) FindKnown(name string) (*knownlicenses.KnownLicense, error) {
	if l := m.catalog.ByName(name); l != nil {
		return l, nil
	}

	similar := m.catalog.FindSimilarByName(name)
	if len(similar) == 1 {
		return similar[0], nil
	}

	if len(similar) > 1 {
		log.Errorf("Multiple known licenses found for '%s': %s", name, strings.Join(similar.Strings(), ", "))
		return nil, fmt.Errorf("%w: '%s' matches %s", ErrAmbiguousLicense, name, strings.Join(similar.Strings(), ", "))
	}

	log.Errorf("Unable to map license '%s' to a known license.", name)
	m.LogKnownLicenses()
	return nil, fmt.Errorf("%w: invalid license '%s', please select one that is known in the Eclipse Foundation IP database", ErrUnknownLicense, name)
}

func (m *Matcher) LogKnownLicenses() {
	log.Error("Known licenses are:")
	for _, name := range m.catalog.Names() {
		log.Error("  - " + name)
	}
}

// IsDualOrMoreLicensed is true for more than one declared license or a single dual license (e.g. CDDL+GPL).
func IsDualOrMoreLicensed(declared []pom.License) bool {
	if len(declared) > 1 {
		return true
	}

	if len(declared) == 1 {
		return knownlicenses.IsDualLicense(declared[0].Name)
	}

	return false
}
