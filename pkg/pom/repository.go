package pom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

var ErrPOMNotFound = errors.New("pom not found")

// Repository locates POM files of artifacts.
type Repository interface {
	FindPOM(groupID, artifactID, version string) (string, error)
}

// LocalRepository looks up POMs in one or more Maven repository directories
// (the ~/.m2/repository layout). It never downloads anything.
type LocalRepository struct {
	Roots []string
}

// NewLocalRepository falls back to the user's default Maven repository when no roots are given.
func NewLocalRepository(roots ...string) *LocalRepository {
	if len(roots) == 0 {
		if root := DefaultLocalRepository(); root != "" {
			roots = []string{root}
		}
	}
	return &LocalRepository{Roots: roots}
}

func DefaultLocalRepository() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug("unable to determine home directory", "err", err)
		return ""
	}
	return filepath.Join(home, ".m2", "repository")
}

// RelativePOMPath is the location of a POM inside a repository root.
func RelativePOMPath(groupID, artifactID, version string) string {
	return filepath.Join(
		filepath.Join(strings.Split(groupID, ".")...),
		artifactID,
		version,
		fmt.Sprintf("%s-%s.pom", artifactID, version),
	)
}

func (r *LocalRepository) FindPOM(groupID, artifactID, version string) (string, error) {
	if groupID == "" || artifactID == "" || version == "" {
		return "", fmt.Errorf("%w: incomplete coordinates %s:%s:%s", ErrPOMNotFound, groupID, artifactID, version)
	}

	relative := RelativePOMPath(groupID, artifactID, version)
	for _, root := range r.Roots {
		path := filepath.Join(root, relative)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s:%s:%s (searched %s)", ErrPOMNotFound, groupID, artifactID, version, strings.Join(r.Roots, ", "))
}
