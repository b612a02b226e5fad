package tasks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-ebr/ebr-cli/pkg/iplog"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

const recipePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>org.eclipse.ebr</groupId>
  <artifactId>org.example.bundle</artifactId>
  <version>1.0.0-SNAPSHOT</version>
  <name>Example Bundle</name>
  <organization><name>Example Org</name></organization>
  <scm><connection>scm:git:https://github.com/eclipse/ebr.git/recipes/example</connection></scm>
  <dependencies>
    <dependency>
      <groupId>org.example</groupId>
      <artifactId>mystery</artifactId>
      <version>1.0</version>
    </dependency>
    <dependency>
      <groupId>org.apache.commons</groupId>
      <artifactId>commons-lang3</artifactId>
      <version>3.4</version>
    </dependency>
    <dependency>
      <groupId>javax.mail</groupId>
      <artifactId>mail</artifactId>
      <version>1.4.7</version>
    </dependency>
    <dependency>
      <groupId>org.slf4j</groupId>
      <artifactId>slf4j-api</artifactId>
      <version>1.7.12</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.12</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>
`

const lang3POM = `<project>
  <groupId>org.apache.commons</groupId>
  <artifactId>commons-lang3</artifactId>
  <version>3.4</version>
  <licenses>
    <license>
      <name>The Apache Software License, Version 2.0</name>
      <url>http://www.apache.org/licenses/LICENSE-2.0.txt</url>
    </license>
  </licenses>
</project>
`

const mailPOM = `<project>
  <groupId>javax.mail</groupId>
  <artifactId>mail</artifactId>
  <version>1.4.7</version>
  <licenses>
    <license>
      <name>CDDL/GPLv2+CE</name>
      <url>https://glassfish.java.net/public/CDDL+GPL_1_1.html</url>
    </license>
  </licenses>
</project>
`

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupRecipe(t *testing.T) (string, types.RecipeConfig) {
	t.Helper()

	dir := t.TempDir()
	repository := t.TempDir()

	writeFile(t, filepath.Join(dir, "pom.xml"), recipePOM)
	writeFile(t, filepath.Join(repository, pom.RelativePOMPath("org.apache.commons", "commons-lang3", "3.4")), lang3POM)
	writeFile(t, filepath.Join(repository, pom.RelativePOMPath("javax.mail", "mail", "1.4.7")), mailPOM)

	config := types.DefaultConfig()
	config.Repositories = []string{repository}
	config.ExcludeDependencies = []string{"slf4j-*"}
	config.LicenseMappings = map[string]string{"mail": "Common Development and Distribution License"}
	config.LocalLicenseFiles = map[string]string{"Apache License, 2.0": "LICENSE-2.0.txt"}

	return dir, config
}

func TestLoadRecipe(t *testing.T) {
	r := require.New(t)
	dir, config := setupRecipe(t)

	recipe, err := LoadRecipe(dir, config, true)
	r.NoError(err)

	r.Equal("org.example.bundle", recipe.Project.ArtifactID)
	r.Equal(filepath.Join(dir, "src", "eclipse", "ip_log.xml"), recipe.IpLogPath())
	r.Equal(filepath.Join(dir, "src", "main", "resources", "about_files"), recipe.AboutFilesDir())

	var keys []string
	for _, d := range recipe.Dependencies() {
		keys = append(keys, d.Key())
	}
	r.Equal([]string{"javax.mail:mail", "org.apache.commons:commons-lang3", "org.example:mystery"}, keys)

	r.NotNil(recipe.Entries[0].Model)
	r.NotNil(recipe.Entries[1].Model)
	r.Nil(recipe.Entries[2].Model)

	r.Equal("Common Development and Distribution License", recipe.Resolver.License(recipe.Entries[0].Dependency).Name)
	r.Equal("LICENSE-2.0.txt", recipe.Resolver.LicenseFile("Apache License, 2.0"))
}

func TestLoadRecipeInvalidMapping(t *testing.T) {
	dir, config := setupRecipe(t)
	config.LicenseMappings = map[string]string{"mail": "WTFPL"}

	_, err := LoadRecipe(dir, config, true)
	assert.ErrorIs(t, err, licenses.ErrUnknownLicense)
}

func TestLoadRecipeMissingPOM(t *testing.T) {
	_, err := LoadRecipe(t.TempDir(), types.DefaultConfig(), true)
	assert.Error(t, err)
}

func TestReconcile(t *testing.T) {
	r := require.New(t)
	dir, config := setupRecipe(t)

	recipe, err := LoadRecipe(dir, config, true)
	r.NoError(err)

	result, err := Reconcile(recipe, false)
	r.NoError(err)
	r.True(result.Written)
	r.FileExists(result.Path)

	r.Len(result.Decisions, 3)
	r.Equal(licenses.StrategyOverride, result.Decisions[0].Strategy)
	r.Equal(licenses.StrategyURL, result.Decisions[1].Strategy)
	r.Equal("Apache License, 2.0", result.Decisions[1].LicenseName())
	r.Equal(licenses.StrategyNone, result.Decisions[2].Strategy)
	r.NotEmpty(result.Problems)

	// a second run keeps the existing file unless forced
	result, err = Reconcile(recipe, false)
	r.NoError(err)
	r.False(result.Written)

	recipe.Config.IpLog.Force = true
	result, err = Reconcile(recipe, false)
	r.NoError(err)
	r.True(result.Written)

	name, err := iplog.LicenseNameFromFile(result.Path)
	r.ErrorIs(err, iplog.ErrNoLicenseInfo)
	r.Empty(name)
}

func TestReconcileKeepsRecordedCQs(t *testing.T) {
	r := require.New(t)
	dir, config := setupRecipe(t)

	writeFile(t, filepath.Join(dir, "src", "eclipse", "ip_log.xml"), `<ip_log version="1.0">
  <project id="org.example.bundle" version="1.0.0" status="done">
    <contact><name>Jane Doe</name><email>jane@example.org</email></contact>
    <legal>
      <ipzilla bug_id="4711"/>
      <license><name>Apache License, 2.0</name></license>
      <package>commons-lang3-3.4.jar</package>
    </legal>
  </project>
</ip_log>`)

	recipe, err := LoadRecipe(dir, config, true)
	r.NoError(err)

	result, err := Reconcile(recipe, true)
	r.NoError(err)
	r.True(result.Written)

	// recorded packages come first
	r.Equal("commons-lang3-3.4.jar", result.Decisions[0].Entry.Package())
	r.Equal("4711", result.Decisions[0].CQ)
	r.Equal(licenses.StrategyIpLog, result.Decisions[0].Strategy)
	r.Equal("mail-1.4.7.jar", result.Decisions[1].Entry.Package())

	doc, err := iplog.Read(result.Path)
	r.NoError(err)
	r.Equal("jane@example.org", doc.FindElement("./ip_log/project/contact/email").Text())
}

func TestCheckLicenseFiles(t *testing.T) {
	r := require.New(t)
	dir, config := setupRecipe(t)

	recipe, err := LoadRecipe(dir, config, true)
	r.NoError(err)

	checks, err := CheckLicenseFiles(recipe)
	r.Error(err)
	r.Len(checks, 1)
	r.Equal(licenses.FileStatusMissing, checks[0].Status)
}
