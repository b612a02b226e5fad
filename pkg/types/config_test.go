package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecipeConfigDefaults(t *testing.T) {
	t.Setenv("EBR_REPOSITORY", "")
	t.Setenv("EBR_FORCE", "")

	config, err := LoadRecipeConfig(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultIpLogDirectory, config.IpLog.Directory)
	assert.Equal(t, DefaultAboutFilesDir, config.AboutFilesDir)
	assert.True(t, config.Strict())
	assert.False(t, config.IpLog.Force)
	assert.Empty(t, config.LicenseMappings)
}

func TestLoadRecipeConfig(t *testing.T) {
	t.Setenv("EBR_REPOSITORY", "")
	t.Setenv("EBR_FORCE", "true")

	dir := t.TempDir()
	content := `
licenseMappings:
  commons-lang3: Apache License, 2.0
  javax.mail:mail: Common Development and Distribution License
localLicenseFiles:
  Java Cup License (MIT Style): LICENSE-javacup.txt
excludeDependencies:
  - "slf4j-api, slf4j-simple"
  - "jackson-*"
ipLog:
  failIfIncomplete: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	config, err := LoadRecipeConfig(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "Apache License, 2.0", config.LicenseMappings["commons-lang3"])
	assert.Equal(t, "Common Development and Distribution License", config.LicenseMappings["javax.mail:mail"])
	assert.Equal(t, "LICENSE-javacup.txt", config.LocalLicenseFiles["Java Cup License (MIT Style)"])
	assert.Equal(t, []string{"slf4j-api", "slf4j-simple", "jackson-*"}, config.ExcludePatterns())
	assert.False(t, config.Strict())
	assert.True(t, config.IpLog.Force)
	assert.Equal(t, DefaultIpLogDirectory, config.IpLog.Directory)
}

func TestLoadRecipeConfigRepositoryEnvironment(t *testing.T) {
	t.Setenv("EBR_REPOSITORY", "/opt/m2"+string(os.PathListSeparator)+"/srv/m2")
	t.Setenv("EBR_FORCE", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("repositories: [/home/ci/.m2/repository]\n"), 0o644))

	config, err := LoadRecipeConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/m2", "/srv/m2", "/home/ci/.m2/repository"}, config.Repositories)
}

func TestLoadRecipeConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("licenseMappings: [oops"), 0o644))

	_, err := LoadRecipeConfig(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}

func TestLoadRecipeConfigExplicitFileMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRecipeConfig(dir, filepath.Join(dir, "custom.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
