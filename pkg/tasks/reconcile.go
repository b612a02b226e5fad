package tasks

import (
	"github.com/beevik/etree"

	"github.com/eclipse-ebr/ebr-cli/pkg/iplog"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
)

type ReconcileResult struct {
	Path      string
	Document  *etree.Document
	Decisions []iplog.Decision
	// Written is false when an existing file was kept because force was not set.
	Written bool
	// Problems found in the generated document, see iplog.Check.
	Problems []string
}

// Decide computes the ip_log.xml content for the recipe without writing it.
func Decide(recipe *Recipe) (*etree.Document, []iplog.Decision, error) {
	existing, err := iplog.Read(recipe.IpLogPath())
	if err != nil {
		return nil, nil, err
	}
	return iplog.NewGenerator(recipe.Resolver).Generate(recipe.Project, recipe.Entries, existing)
}

// Reconcile regenerates the recipe's ip_log.xml. An existing file is only replaced with force.
func Reconcile(recipe *Recipe, force bool) (*ReconcileResult, error) {
	doc, decisions, err := Decide(recipe)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{
		Path:      recipe.IpLogPath(),
		Document:  doc,
		Decisions: decisions,
		Problems:  iplog.Check(doc, recipe.IpLogPath()),
	}

	result.Written, err = iplog.WriteFile(doc, result.Path, force || recipe.Config.IpLog.Force)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckLicenseFiles verifies the local license texts configured for the recipe.
func CheckLicenseFiles(recipe *Recipe) ([]licenses.FileCheck, error) {
	detector := licenses.NewLicenseDetector(recipe.Resolver.Catalog())
	return detector.CheckLocalLicenseFiles(recipe.AboutFilesDir(), recipe.Resolver.LicenseFiles())
}
