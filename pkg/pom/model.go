package pom

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Project is the subset of a Maven pom.xml needed to reason about licensing and provenance.
type Project struct {
	XMLName      xml.Name      `xml:"project"`
	Parent       *Parent       `xml:"parent"`
	GroupID      string        `xml:"groupId"`
	ArtifactID   string        `xml:"artifactId"`
	Version      string        `xml:"version"`
	Packaging    string        `xml:"packaging"`
	Name         string        `xml:"name"`
	Description  string        `xml:"description"`
	URL          string        `xml:"url"`
	Organization *Organization `xml:"organization"`

	Licenses        []License        `xml:"licenses>license"`
	Developers      []Developer      `xml:"developers>developer"`
	MailingLists    []MailingList    `xml:"mailingLists>mailingList"`
	SCM             *SCM             `xml:"scm"`
	IssueManagement *IssueManagement `xml:"issueManagement"`
	Properties      Properties       `xml:"properties"`

	Dependencies         []Dependency `xml:"dependencies>dependency"`
	DependencyManagement []Dependency `xml:"dependencyManagement>dependencies>dependency"`
}

type Parent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

func (p Parent) String() string {
	return fmt.Sprintf("%s:%s:%s", p.GroupID, p.ArtifactID, p.Version)
}

type Organization struct {
	Name string `xml:"name"`
	URL  string `xml:"url"`
}

type License struct {
	Name         string `xml:"name" json:"name,omitempty"`
	URL          string `xml:"url" json:"url,omitempty"`
	Distribution string `xml:"distribution" json:"distribution,omitempty"`
	Comments     string `xml:"comments" json:"comments,omitempty"`
}

type Developer struct {
	ID              string `xml:"id"`
	Name            string `xml:"name"`
	Email           string `xml:"email"`
	URL             string `xml:"url"`
	Organization    string `xml:"organization"`
	OrganizationURL string `xml:"organizationUrl"`
}

type MailingList struct {
	Name        string `xml:"name"`
	Subscribe   string `xml:"subscribe"`
	Unsubscribe string `xml:"unsubscribe"`
	Post        string `xml:"post"`
	Archive     string `xml:"archive"`
}

type SCM struct {
	Connection          string `xml:"connection"`
	DeveloperConnection string `xml:"developerConnection"`
	URL                 string `xml:"url"`
	Tag                 string `xml:"tag"`
}

// PreferredURL is the developer connection, then the connection, then the browsable URL.
func (s *SCM) PreferredURL() string {
	if s == nil {
		return ""
	}
	for _, url := range []string{s.DeveloperConnection, s.Connection, s.URL} {
		if url != "" {
			return url
		}
	}
	return ""
}

type IssueManagement struct {
	System string `xml:"system"`
	URL    string `xml:"url"`
}

// Properties holds the <properties> section; element names are the keys.
type Properties map[string]string

func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if *p == nil {
		*p = Properties{}
	}

	for {
		t, err := d.Token()
		if err != nil {
			return err
		}

		switch tt := t.(type) {
		case xml.StartElement:
			var s string
			if err := d.DecodeElement(&s, &tt); err != nil {
				return fmt.Errorf("property %s: %w", tt.Name.Local, err)
			}
			(*p)[tt.Name.Local] = strings.TrimSpace(s)
		case xml.EndElement:
			if tt.Name == start.Name {
				return nil
			}
		}
	}
}

// Coordinates returns groupId:artifactId:version of the project, falling back to the parent.
func (p *Project) Coordinates() string {
	return fmt.Sprintf("%s:%s:%s", p.EffectiveGroupID(), p.ArtifactID, p.EffectiveVersion())
}

func (p *Project) EffectiveGroupID() string {
	if p.GroupID == "" && p.Parent != nil {
		return p.Parent.GroupID
	}
	return p.GroupID
}

func (p *Project) EffectiveVersion() string {
	if p.Version == "" && p.Parent != nil {
		return p.Parent.Version
	}
	return p.Version
}

func (p *Project) HasDevelopers() bool {
	return len(p.Developers) > 0
}

// Dependency is a <dependency> entry of a pom.xml.
type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// Key is groupId:artifactId, the key used for explicit license mappings.
func (d Dependency) Key() string {
	return d.GroupID + ":" + d.ArtifactID
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s:%s:%s", d.GroupID, d.ArtifactID, d.Version)
}

func (d Dependency) EffectiveType() string {
	if d.Type == "" {
		return "jar"
	}
	return d.Type
}

func (d Dependency) EffectiveScope() string {
	if d.Scope == "" {
		return ScopeCompile
	}
	return d.Scope
}

// Extension is the file extension of the artifact a dependency of this type resolves to.
func (d Dependency) Extension() string {
	switch d.EffectiveType() {
	case "bundle", "test-jar", "ejb", "ejb-client", "java-source", "javadoc", "maven-plugin":
		return "jar"
	default:
		return d.EffectiveType()
	}
}

// FileName is the artifact file name as it appears in a Maven repository, e.g. commons-io-2.4.jar.
// ip_log.xml uses it to identify a dependency.
func (d Dependency) FileName() string {
	classifier := d.Classifier
	if classifier == "" {
		switch d.EffectiveType() {
		case "test-jar":
			classifier = "tests"
		case "java-source":
			classifier = "sources"
		case "javadoc":
			classifier = "javadoc"
		case "ejb-client":
			classifier = "client"
		}
	}
	if classifier != "" {
		return fmt.Sprintf("%s-%s-%s.%s", d.ArtifactID, d.Version, classifier, d.Extension())
	}
	return fmt.Sprintf("%s-%s.%s", d.ArtifactID, d.Version, d.Extension())
}

// AddedToClasspath reports whether artifacts of this type end up on the compile class path.
func (d Dependency) AddedToClasspath() bool {
	switch d.EffectiveType() {
	case "jar", "bundle", "test-jar", "ejb", "ejb-client", "java-source", "javadoc":
		return true
	default:
		return false
	}
}
