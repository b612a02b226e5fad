package iplog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

var ErrNoLicenseInfo = errors.New("unable to read license info")

// IncompleteError lists every problem found in an incomplete ip_log.xml.
type IncompleteError struct {
	Path     string
	Problems []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("ip_log.xml '%s' is incomplete:\n - %s", e.Path, strings.Join(e.Problems, "\n - "))
}

// Check returns the problems of an ip_log.xml document; a nil document is reported as missing.
func Check(doc *etree.Document, path string) []string {
	if doc == nil {
		return []string{fmt.Sprintf("Verification failed: No ip_log.xml file found at '%s'", path)}
	}

	var problems []string
	report := func(msg string) {
		problems = append(problems, msg)
	}

	ps := projects(doc)
	switch {
	case len(ps) == 0:
		report("Missing project information in ip_log.xml.")
	case len(ps) > 1:
		report("Too many 'project' elements. Only one 'project' element is expected in the ip_log.xml.")
	}

	var contacts []*etree.Element
	if len(ps) > 0 {
		contacts = ps[0].SelectElements("contact")
	}
	if len(contacts) == 0 {
		report("Missing contact information in ip_log.xml.")
	}
	for _, contact := range contacts {
		if name, _ := childText(contact, "name"); name == "" {
			report("Incomplete contact information in ip_log.xml. Element 'name' is required and must not be empty!")
		}
		if email, _ := childText(contact, "email"); email == "" {
			report("Incomplete contact information in ip_log.xml. Element 'email' is required and must not be empty!")
		}
	}

	for _, project := range ps {
		legals := project.SelectElements("legal")
		if len(legals) == 0 {
			report("Missing legal information in ip_log.xml.")
			continue
		}
		for _, legal := range legals {
			pkg, _ := childText(legal, "package")
			if cq := legalCQ(legal); cq == "" {
				report(withPackage("Incomplete legal information in ip_log.xml. Reference to IPzilla CQ is required!", pkg))
			}
			ls := legal.SelectElements("license")
			if len(ls) == 0 {
				report(withPackage("Incomplete legal information in ip_log.xml. Element 'license' with license information is required!", pkg))
			}
			for _, license := range ls {
				if name, _ := childText(license, "name"); name == "" {
					report(withPackage("Incomplete license information in ip_log.xml. Element 'name' is required and must not be empty!", pkg))
				}
				if reference, _ := childText(license, "reference"); reference == "" {
					report(withPackage("Incomplete license information in ip_log.xml. Element 'reference' is required and must not be empty!", pkg))
				}
			}
		}
	}

	return problems
}

// Verify checks an ip_log.xml. With failIfIncomplete every problem is collected into an
// *IncompleteError, otherwise problems are logged as warnings.
func Verify(doc *etree.Document, path string, failIfIncomplete bool) error {
	problems := Check(doc, path)
	if len(problems) == 0 {
		return nil
	}

	if failIfIncomplete {
		return &IncompleteError{Path: path, Problems: problems}
	}

	for _, problem := range problems {
		log.Warn(problem)
	}
	return nil
}

// VerifyFile reads and verifies the ip_log.xml at path.
func VerifyFile(path string, failIfIncomplete bool) error {
	doc, err := Read(path)
	if err != nil {
		return err
	}
	return Verify(doc, path, failIfIncomplete)
}

// LicenseName returns the license of an ip_log.xml with exactly one project, one legal entry and
// one named license. This is the license a single-artifact bundle is published under.
func LicenseName(doc *etree.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: no ip_log.xml file found", ErrNoLicenseInfo)
	}

	ps := projects(doc)
	if len(ps) == 0 {
		return "", fmt.Errorf("%w: missing project information in ip_log.xml", ErrNoLicenseInfo)
	} else if len(ps) != 1 {
		return "", fmt.Errorf("%w: too many 'project' elements, only one is expected", ErrNoLicenseInfo)
	}

	legals := ps[0].SelectElements("legal")
	if len(legals) == 0 {
		return "", fmt.Errorf("%w: missing legal information in ip_log.xml", ErrNoLicenseInfo)
	} else if len(legals) != 1 {
		return "", fmt.Errorf("%w: too many 'legal' elements, only one is expected", ErrNoLicenseInfo)
	}

	ls := legals[0].SelectElements("license")
	if len(ls) == 0 {
		return "", fmt.Errorf("%w: element 'license' with license information is required", ErrNoLicenseInfo)
	} else if len(ls) != 1 {
		return "", fmt.Errorf("%w: too many 'license' elements, only one is expected", ErrNoLicenseInfo)
	}

	name, _ := childText(ls[0], "name")
	if name == "" {
		return "", fmt.Errorf("%w: element 'name' is required and must not be empty", ErrNoLicenseInfo)
	}
	return name, nil
}

// LicenseNameFromFile reads path and returns LicenseName.
func LicenseNameFromFile(path string) (string, error) {
	doc, err := Read(path)
	if err != nil {
		return "", err
	}
	name, err := LicenseName(doc)
	if err != nil {
		log.Debug(err.Error(), "path", path)
		return "", err
	}
	return name, nil
}

func legalCQ(legal *etree.Element) string {
	ipzilla := legal.SelectElement("ipzilla")
	if ipzilla == nil {
		return ""
	}
	return strings.TrimSpace(ipzilla.SelectAttrValue("bug_id", ""))
}

func withPackage(msg string, pkg string) string {
	if pkg == "" {
		return msg
	}
	return fmt.Sprintf("%s (package %s)", msg, pkg)
}
