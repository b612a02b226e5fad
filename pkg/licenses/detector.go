package licenses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/licensecheck"
	"golang.org/x/exp/maps"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

// Detector identifies license texts (local about_files) using licensecheck.
type Detector struct {
	catalog *knownlicenses.Catalog
}

func NewLicenseDetector(catalog *knownlicenses.Catalog) *Detector {
	if catalog == nil {
		catalog = knownlicenses.Default()
	}
	return &Detector{catalog: catalog}
}

type License struct {
	File       string
	Id         string
	Confidence float64
}

func (d *Detector) DetectFile(pathFileName string) ([]License, error) {
	bs, err := os.ReadFile(pathFileName)
	if err != nil {
		return nil, err
	}

	return d.detectBlob(pathFileName, bs), nil
}

func (d *Detector) detectBlob(pathFileName string, text []byte) []License {
	result := licensecheck.Scan(text)

	var licenses []License
	for _, m := range result.Match {
		licenses = append(licenses, License{
			File:       pathFileName,
			Id:         m.ID,
			Confidence: result.Percent / 100,
		})
	}

	return licenses
}

type FileStatus string

const (
	FileStatusOK       FileStatus = "ok"
	FileStatusMismatch FileStatus = "mismatch"
	FileStatusUnknown  FileStatus = "unknown"
	FileStatusMissing  FileStatus = "missing"
)

// FileCheck is the result of checking one configured local license file.
type FileCheck struct {
	License  string
	File     string
	Expected string
	Detected []string
	Status   FileStatus
}

// CheckLocalLicenseFiles verifies that every configured license file exists in aboutFilesDir and
// that its text is recognized as the license it is configured for. Missing files are an error,
// texts that do not match are reported as warnings.
func (d *Detector) CheckLocalLicenseFiles(aboutFilesDir string, files map[string]string) ([]FileCheck, error) {
	var checks []FileCheck
	var errs []error

	names := maps.Keys(files)
	slices.Sort(names)
	for _, name := range names {
		check := FileCheck{License: name, File: filepath.Join(aboutFilesDir, files[name])}
		if known := d.catalog.ByName(name); known != nil {
			check.Expected = known.SPDX
		}

		detected, err := d.DetectFile(check.File)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				check.Status = FileStatusMissing
				checks = append(checks, check)
				errs = append(errs, fmt.Errorf("local license file '%s' configured for license '%s' is missing", check.File, name))
				continue
			}
			return nil, err
		}

		for _, l := range detected {
			check.Detected = append(check.Detected, l.Id)
		}

		switch {
		case check.Expected == "" || len(check.Detected) == 0:
			check.Status = FileStatusUnknown
			log.Debug("unable to verify license text", "file", check.File, "license", name, "detected", check.Detected)
		case slices.Contains(check.Detected, check.Expected):
			check.Status = FileStatusOK
		default:
			check.Status = FileStatusMismatch
			log.Warnf("License file '%s' looks like %v but is configured for '%s' (%s).", check.File, check.Detected, name, check.Expected)
		}
		checks = append(checks, check)
	}

	return checks, errors.Join(errs...)
}
