package files

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrNotFound = errors.New("file not found")

// HashFileSha256 calculates the SHA-256 hash of a file
func HashFileSha256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// FindFile looks for a file named name anywhere below dir. When several files match, the
// shallowest (then lexically first) path wins.
func FindFile(dir string, name string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/"+name, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("searching %s in %s: %w", name, dir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s in %s", ErrNotFound, name, dir)
	}

	slices.SortFunc(matches, func(a, b string) int {
		return cmp.Or(cmp.Compare(depth(a), depth(b)), cmp.Compare(a, b))
	})

	return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
}

func depth(path string) int {
	return strings.Count(path, "/")
}
