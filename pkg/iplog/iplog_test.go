package iplog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
)

func recipe() *pom.Project {
	return &pom.Project{
		GroupID:    "org.eclipse.ebr",
		ArtifactID: "org.apache.commons.lang3",
		Version:    "3.4.0-SNAPSHOT",
		Name:       "Apache Commons Lang",
		URL:        "http://commons.apache.org/proper/commons-lang/",
		Organization: &pom.Organization{
			Name: "The Apache Software Foundation",
			URL:  "http://www.apache.org/",
		},
		SCM: &pom.SCM{
			Connection: "scm:git:https://git.eclipse.org/r/ebr/ebr.git/recipes/apache-commons/org.apache.commons.lang3",
		},
	}
}

var (
	lang3 = Entry{
		Dependency: pom.Dependency{GroupID: "org.apache.commons", ArtifactID: "commons-lang3", Version: "3.4"},
		Model: &pom.Project{Licenses: []pom.License{
			{Name: "The Apache Software License, Version 2.0", URL: "http://www.apache.org/licenses/LICENSE-2.0.txt"},
		}},
	}
	noLicense = Entry{
		Dependency: pom.Dependency{GroupID: "org.example", ArtifactID: "mystery", Version: "1.0"},
		Model:      &pom.Project{},
	}
	mail = Entry{
		Dependency: pom.Dependency{GroupID: "javax.mail", ArtifactID: "mail", Version: "1.4.7"},
		Model: &pom.Project{Licenses: []pom.License{
			{Name: "CDDL/GPLv2+CE", URL: "https://glassfish.java.net/public/CDDL+GPL_1_1.html"},
		}},
	}
)

func parse(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc
}

func text(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, path)
	return el.Text()
}

func TestGenerateFromScratch(t *testing.T) {
	r := require.New(t)

	doc, decisions, err := NewGenerator(nil).Generate(recipe(), []Entry{lang3, noLicense}, nil)
	r.NoError(err)

	project := doc.FindElement("./ip_log/project")
	r.NotNil(project)
	r.Equal("1.0", doc.Root().SelectAttrValue("version", ""))
	r.Equal("org.apache.commons.lang3", project.SelectAttrValue("id", ""))
	r.Equal("3.4.0", project.SelectAttrValue("version", ""))
	r.Equal("done", project.SelectAttrValue("status", ""))

	r.Equal("Apache Commons Lang", text(t, doc, "./ip_log/project/info/name"))
	r.Equal("The Apache Software Foundation", text(t, doc, "./ip_log/project/info/origin"))
	r.Equal("http://commons.apache.org/proper/commons-lang/", text(t, doc, "./ip_log/project/info/reference"))
	r.Equal("scm:git:https://git.eclipse.org/r/ebr/ebr.git", text(t, doc, "./ip_log/project/info/repository"))
	r.Equal("recipes/apache-commons/org.apache.commons.lang3", text(t, doc, "./ip_log/project/info/location"))
	r.Nil(doc.FindElement("./ip_log/project/info/tag"))

	contacts := project.SelectElements("contact")
	r.Len(contacts, 1)
	r.NotNil(contacts[0].SelectElement("company"))
	r.Nil(project.SelectElement("notes"))

	legals := project.SelectElements("legal")
	r.Len(legals, 2)
	r.Equal("", legals[0].SelectElement("ipzilla").SelectAttrValue("bug_id", "x"))
	r.Equal("Apache License, 2.0", legals[0].FindElement("license/name").Text())
	r.Equal("http://www.apache.org/licenses/LICENSE-2.0.txt", legals[0].FindElement("license/reference").Text())
	r.Equal("commons-lang3-3.4.jar", legals[0].SelectElement("package").Text())

	r.NotNil(legals[1].SelectElement("license"))
	r.Nil(legals[1].FindElement("license/name"))
	r.Equal("mystery-1.0.jar", legals[1].SelectElement("package").Text())

	r.Len(decisions, 2)
	r.Equal(licenses.StrategyURL, decisions[0].Strategy)
	r.False(decisions[1].HasLicense())
}

const existingLog = `<?xml version="1.0" encoding="UTF-8"?>
<ip_log version="1.0">
  <project id="org.apache.commons.lang3" version="3.3.0" status="done">
    <info>
      <name>Commons Lang (Orbit)</name>
      <origin>Apache</origin>
      <reference>http://commons.apache.org/lang</reference>
      <repository>git://git.eclipse.org/gitroot/orbit/recipes.git</repository>
      <location>apache-commons</location>
      <tag>v3.3</tag>
    </info>
    <contact>
      <name>Jane Doe</name>
      <email>jane@example.org</email>
      <company>Example Inc.</company>
      <phone>+1 555</phone>
    </contact>
    <notes>Reviewed as part of <a href="https://dev.eclipse.org/ipzilla/show_bug.cgi?id=1">CQ 1</a>.</notes>
    <legal>
      <ipzilla bug_id="9001"/>
      <license>
        <name>Old Mail License</name>
        <reference>http://example.org/mail</reference>
      </license>
      <package>mail-1.4.7.jar</package>
    </legal>
    <legal>
      <ipzilla bug_id="9000"/>
      <license>
        <name>Apache License, 2.0</name>
        <reference>stale</reference>
      </license>
      <package>commons-lang3-3.4.jar</package>
    </legal>
    <legal>
      <ipzilla bug_id="8000"/>
      <license><name>MIT license</name></license>
      <package>removed-1.0.jar</package>
    </legal>
  </project>
</ip_log>
`

func TestGenerateMergesExisting(t *testing.T) {
	r := require.New(t)

	doc, decisions, err := NewGenerator(nil).Generate(recipe(), []Entry{lang3, mail, noLicense}, parse(t, existingLog))
	r.NoError(err)

	project := doc.FindElement("./ip_log/project")
	r.Equal("3.3.0", project.SelectAttrValue("version", ""))
	r.Equal("Commons Lang (Orbit)", text(t, doc, "./ip_log/project/info/name"))
	r.Equal("Apache", text(t, doc, "./ip_log/project/info/origin"))
	r.Equal("git://git.eclipse.org/gitroot/orbit/recipes.git", text(t, doc, "./ip_log/project/info/repository"))
	r.Equal("apache-commons", text(t, doc, "./ip_log/project/info/location"))
	r.Equal("v3.3", text(t, doc, "./ip_log/project/info/tag"))

	r.Equal("+1 555", text(t, doc, "./ip_log/project/contact/phone"))
	notes := project.SelectElement("notes")
	r.NotNil(notes)
	r.NotNil(notes.SelectElement("a"))

	var packages []string
	for _, legal := range project.SelectElements("legal") {
		packages = append(packages, legal.SelectElement("package").Text())
	}
	r.Equal([]string{"mail-1.4.7.jar", "commons-lang3-3.4.jar", "mystery-1.0.jar"}, packages)

	r.Len(decisions, 3)
	// unknown license kept verbatim
	r.Equal("9001", decisions[0].CQ)
	r.NotNil(decisions[0].Preserved)
	r.Equal("Old Mail License", decisions[0].LicenseName())
	r.Equal("http://example.org/mail", text(t, doc, "./ip_log/project/legal[1]/license/reference"))

	// known license name from ip_log.xml, reference refreshed from the catalog
	r.Equal("9000", decisions[1].CQ)
	r.Equal(licenses.StrategyIpLog, decisions[1].Strategy)
	r.Equal("http://www.apache.org/licenses/LICENSE-2.0.txt", text(t, doc, "./ip_log/project/legal[2]/license/reference"))

	r.Equal("", decisions[2].CQ)
}

func TestGenerateKeepsArtifactsSharingPackageName(t *testing.T) {
	r := require.New(t)

	first := Entry{Dependency: pom.Dependency{GroupID: "com.a", ArtifactID: "util", Version: "1.0"}, Model: &pom.Project{}}
	second := Entry{Dependency: pom.Dependency{GroupID: "org.b", ArtifactID: "util", Version: "1.0"}, Model: &pom.Project{}}

	doc, decisions, err := NewGenerator(nil).Generate(recipe(), []Entry{first, second}, nil)
	r.NoError(err)

	legals := doc.FindElements("./ip_log/project/legal")
	r.Len(legals, 2)
	r.Equal("util-1.0.jar", legals[0].SelectElement("package").Text())
	r.Equal("util-1.0.jar", legals[1].SelectElement("package").Text())

	r.Len(decisions, 2)
	r.Equal("com.a", decisions[0].Entry.Dependency.GroupID)
	r.Equal("org.b", decisions[1].Entry.Dependency.GroupID)

	// both stay when the package is already recorded
	existing := parse(t, `<ip_log><project><legal><ipzilla bug_id="1"/><license/><package>util-1.0.jar</package></legal></project></ip_log>`)
	doc, decisions, err = NewGenerator(nil).Generate(recipe(), []Entry{first, second, lang3}, existing)
	r.NoError(err)
	r.Len(doc.FindElements("./ip_log/project/legal"), 3)
	r.Len(decisions, 3)
	r.Equal("1", decisions[0].CQ)
	r.Equal("1", decisions[1].CQ)
	r.Equal("commons-lang3-3.4.jar", decisions[2].Entry.Package())
}

func TestGenerateOverrideWins(t *testing.T) {
	r := require.New(t)

	resolver := licenses.NewResolver(nil)
	r.NoError(resolver.SetLicense(mail.Dependency, "Common Development and Distribution License"))

	doc, decisions, err := NewGenerator(resolver).Generate(recipe(), []Entry{mail}, parse(t, existingLog))
	r.NoError(err)

	r.Equal(licenses.StrategyOverride, decisions[0].Strategy)
	r.Nil(decisions[0].Preserved)
	r.Equal("Common Development and Distribution License", text(t, doc, "./ip_log/project/legal/license/name"))
	r.Equal("9001", doc.FindElement("./ip_log/project/legal/ipzilla").SelectAttrValue("bug_id", ""))
}

func TestGenerateInvalidVersion(t *testing.T) {
	p := recipe()
	p.Version = "latest"
	_, _, err := NewGenerator(nil).Generate(p, nil, nil)
	require.Error(t, err)
}

func TestGenerateOriginFromDevelopers(t *testing.T) {
	p := recipe()
	p.Organization = nil
	p.Developers = []pom.Developer{
		{Name: "Ann", Email: "ann@example.org", Organization: "A & B"},
		{Name: "Bob", Email: "bob@example.org"},
		{Name: "Cy", Email: "cy@example.org"},
	}
	doc, _, err := NewGenerator(nil).Generate(p, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ann &lt;ann@example.org&gt; (A &amp; B), Bob &lt;bob@example.org&gt; and Cy &lt;cy@example.org&gt;", text(t, doc, "./ip_log/project/info/origin"))

	p.Developers = nil
	doc, _, err = NewGenerator(nil).Generate(p, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, doc.FindElement("./ip_log/project/info/origin"))
}

func TestProjectVersion(t *testing.T) {
	tests := map[string]string{
		"3.4.0-SNAPSHOT":   "3.4.0",
		"3.4":              "3.4.0",
		"2":                "2.0.0",
		"1.2.3.v20150101":  "1.2.3",
		"1.10.19-SNAPSHOT": "1.10.19",
	}
	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			v, err := projectVersion(&pom.Project{Version: in})
			require.NoError(t, err)
			assert.Equal(t, expected, v)
		})
	}
}

func TestSplitRepository(t *testing.T) {
	p := &pom.Project{SCM: &pom.SCM{URL: "https://github.com/eclipse/ebr", Connection: "scm:git:git://github.com/eclipse/ebr.git", DeveloperConnection: "scm:git:ssh://git@github.com/eclipse/ebr.git/recipes/x"}}
	repository, location, ok := splitRepository(p)
	assert.True(t, ok)
	assert.Equal(t, "scm:git:ssh://git@github.com/eclipse/ebr.git", repository)
	assert.Equal(t, "recipes/x", location)

	_, _, ok = splitRepository(&pom.Project{})
	assert.False(t, ok)
}

func TestWriteFileRespectsForce(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "src", "eclipse", FileName)

	missing, err := Read(path)
	r.NoError(err)
	r.Nil(missing)

	doc, _, err := NewGenerator(nil).Generate(recipe(), []Entry{lang3}, nil)
	r.NoError(err)

	written, err := WriteFile(doc, path, false)
	r.NoError(err)
	r.True(written)

	r.NoError(os.WriteFile(path, []byte(existingLog), 0o644))
	written, err = WriteFile(doc, path, false)
	r.NoError(err)
	r.False(written)

	reread, err := Read(path)
	r.NoError(err)
	r.Equal("3.3.0", reread.FindElement("./ip_log/project").SelectAttrValue("version", ""))

	written, err = WriteFile(doc, path, true)
	r.NoError(err)
	r.True(written)

	reread, err = Read(path)
	r.NoError(err)
	r.Equal("3.4.0", reread.FindElement("./ip_log/project").SelectAttrValue("version", ""))
	r.Equal("commons-lang3-3.4.jar", reread.FindElement("./ip_log/project/legal/package").Text())
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("<ip_log version=>"), 0o644))

	_, err := Read(path)
	require.Error(t, err)
}
