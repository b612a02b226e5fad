package pom

import (
	"regexp"
	"strings"
)

var interpolationReg = regexp.MustCompile(`\$\{([^}]+)\}`)

// maximum nesting of properties referring to other properties
const maxInterpolationDepth = 10

// Interpolate replaces ${...} references with project values and <properties>.
// Unknown references are kept verbatim.
func (p *Project) Interpolate() {
	values := p.interpolationValues()

	expand := func(s *string) {
		*s = interpolate(*s, values)
	}

	for _, s := range []*string{&p.GroupID, &p.ArtifactID, &p.Version, &p.Name, &p.Description, &p.URL} {
		expand(s)
	}
	if p.Organization != nil {
		expand(&p.Organization.Name)
		expand(&p.Organization.URL)
	}
	for i := range p.Licenses {
		expand(&p.Licenses[i].Name)
		expand(&p.Licenses[i].URL)
	}
	for i := range p.Developers {
		d := &p.Developers[i]
		for _, s := range []*string{&d.Name, &d.Email, &d.URL, &d.Organization, &d.OrganizationURL} {
			expand(s)
		}
	}
	for i := range p.MailingLists {
		m := &p.MailingLists[i]
		for _, s := range []*string{&m.Name, &m.Subscribe, &m.Unsubscribe, &m.Post, &m.Archive} {
			expand(s)
		}
	}
	if p.SCM != nil {
		for _, s := range []*string{&p.SCM.Connection, &p.SCM.DeveloperConnection, &p.SCM.URL, &p.SCM.Tag} {
			expand(s)
		}
	}
	if p.IssueManagement != nil {
		expand(&p.IssueManagement.System)
		expand(&p.IssueManagement.URL)
	}
	for _, deps := range [][]Dependency{p.Dependencies, p.DependencyManagement} {
		for i := range deps {
			d := &deps[i]
			for _, s := range []*string{&d.GroupID, &d.ArtifactID, &d.Version, &d.Type, &d.Classifier, &d.Scope} {
				expand(s)
			}
		}
	}
}

func (p *Project) interpolationValues() map[string]string {
	values := map[string]string{}
	for k, v := range p.Properties {
		values[k] = v
	}

	builtins := map[string]string{
		"groupId":     p.EffectiveGroupID(),
		"artifactId":  p.ArtifactID,
		"version":     p.EffectiveVersion(),
		"name":        p.Name,
		"description": p.Description,
		"url":         p.URL,
		"packaging":   p.Packaging,
	}
	if p.Organization != nil {
		builtins["organization.name"] = p.Organization.Name
		builtins["organization.url"] = p.Organization.URL
	}
	if p.Parent != nil {
		builtins["parent.groupId"] = p.Parent.GroupID
		builtins["parent.artifactId"] = p.Parent.ArtifactID
		builtins["parent.version"] = p.Parent.Version
	}
	for k, v := range builtins {
		values["project."+k] = v
		values["pom."+k] = v
	}
	return values
}

func interpolate(s string, values map[string]string) string {
	for depth := 0; depth < maxInterpolationDepth && strings.Contains(s, "${"); depth++ {
		replaced := interpolationReg.ReplaceAllStringFunc(s, func(ref string) string {
			key := ref[2 : len(ref)-1]
			if v, ok := values[key]; ok {
				return v
			}
			return ref
		})
		if replaced == s {
			break
		}
		s = replaced
	}
	return s
}
