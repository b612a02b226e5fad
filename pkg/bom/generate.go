package bom

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/package-url/packageurl-go"

	"github.com/eclipse-ebr/ebr-cli/pkg/files"
	"github.com/eclipse-ebr/ebr-cli/pkg/ids"
	"github.com/eclipse-ebr/ebr-cli/pkg/iplog"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// https://json-schema.org/understanding-json-schema/reference/string.html#dates-and-times
const JsonSchemaDateTimeFormat = "2006-01-02T15:04:05+00:00"

const (
	PropertyPackage         = "ebr:package"
	PropertyCQ              = "ebr:cq"
	PropertyLicenseStrategy = "ebr:licenseStrategy"
	PropertyDualLicensed    = "ebr:dualLicensed"
)

type Options struct {
	// ArtifactsDir is searched for the package files to record their SHA-256 hashes.
	ArtifactsDir string
	CreatedAt    time.Time
}

// GenerateCycloneDX describes a recipe bundle and the third-party artifacts it repackages,
// including the legal decisions taken for each of them.
func GenerateCycloneDX(recipe *pom.Project, decisions []iplog.Decision, opts Options) (*cdx.BOM, error) {
	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	bom := cdx.NewBOM()

	bom.Version = 1
	bom.SerialNumber = fmt.Sprintf("urn:uuid:%s", ids.NextUUID())

	bom.Metadata = &cdx.Metadata{
		Timestamp: createdAt.UTC().Format(JsonSchemaDateTimeFormat),
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{
				{
					Type:    cdx.ComponentTypeApplication,
					Name:    types.DefaultToolName,
					Version: types.Version,
				},
			},
		},
		Lifecycles: &[]cdx.Lifecycle{
			{
				Phase: cdx.LifecyclePhaseBuild,
			},
		},
	}

	// metadata component
	bom.Metadata.Component = recipeComponent(recipe)
	if name := singleLicense(decisions); name != nil {
		bom.Metadata.Component.Licenses = &cdx.Licenses{*name}
	}

	if org := recipe.Organization; org != nil && org.Name != "" {
		bom.Metadata.Supplier = &cdx.OrganizationalEntity{Name: org.Name}
		if org.URL != "" {
			bom.Metadata.Supplier.URL = &[]string{org.URL}
		}
	}

	for _, developer := range recipe.Developers {
		if bom.Metadata.Authors == nil {
			bom.Metadata.Authors = &[]cdx.OrganizationalContact{}
		}
		*bom.Metadata.Authors = append(*bom.Metadata.Authors, cdx.OrganizationalContact{
			Name:  developer.Name,
			Email: developer.Email,
		})
	}

	// components
	var components []cdx.Component
	var rootDependencies []string
	index := map[string]int{}

	for _, decision := range decisions {
		component := artifactComponent(decision, opts.ArtifactsDir)

		// skip if already added to BOM
		if _, found := index[component.BOMRef]; found {
			continue
		}

		components = append(components, component)
		index[component.BOMRef] = len(components) - 1
		rootDependencies = append(rootDependencies, component.BOMRef)
	}

	bom.Components = &components
	bom.Dependencies = &[]cdx.Dependency{
		{
			Ref:          bom.Metadata.Component.BOMRef,
			Dependencies: &rootDependencies,
		},
	}

	return bom, nil
}

func recipeComponent(recipe *pom.Project) *cdx.Component {
	purl := mavenPURL(recipe.EffectiveGroupID(), recipe.ArtifactID, recipe.EffectiveVersion(), nil)

	component := &cdx.Component{
		BOMRef:      purl,
		Type:        cdx.ComponentTypeLibrary,
		Group:       recipe.EffectiveGroupID(),
		Name:        recipe.ArtifactID,
		Version:     recipe.EffectiveVersion(),
		Description: recipe.Name,
		PackageURL:  purl,
	}
	if refs := externalReferences(recipe); len(refs) > 0 {
		component.ExternalReferences = &refs
	}
	return component
}

func artifactComponent(decision iplog.Decision, artifactsDir string) cdx.Component {
	d := decision.Entry.Dependency

	var qualifiers packageurl.Qualifiers
	if d.Classifier != "" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "classifier", Value: d.Classifier})
	}
	if t := d.EffectiveType(); t != "jar" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "type", Value: t})
	}
	purl := mavenPURL(d.GroupID, d.ArtifactID, d.Version, qualifiers)

	component := cdx.Component{
		BOMRef:     purl,
		Type:       cdx.ComponentTypeLibrary,
		Group:      d.GroupID,
		Name:       d.ArtifactID,
		Version:    d.Version,
		PackageURL: purl,
	}

	declared := decision.Entry.DeclaredLicenses()
	if ls := componentLicenses(decision, declared); len(ls) > 0 {
		component.Licenses = &ls
	}

	if model := decision.Entry.Model; model != nil {
		if model.Name != "" {
			component.Description = model.Name
		}
		if refs := externalReferences(model); len(refs) > 0 {
			component.ExternalReferences = &refs
		}
	}

	component.Properties = &[]cdx.Property{
		{Name: PropertyPackage, Value: decision.Entry.Package()},
		{Name: PropertyCQ, Value: decision.CQ},
		{Name: PropertyLicenseStrategy, Value: string(decision.Strategy)},
		{Name: PropertyDualLicensed, Value: strconv.FormatBool(licenses.IsDualOrMoreLicensed(declared))},
	}

	if artifactsDir != "" {
		if hash, err := hashArtifact(artifactsDir, decision.Entry.Package()); err == nil {
			component.Hashes = &[]cdx.Hash{
				{
					Algorithm: cdx.HashAlgoSHA256,
					Value:     hash,
				},
			}
		} else if errors.Is(err, files.ErrNotFound) {
			log.Debug("artifact not found, skipping hash", "package", decision.Entry.Package(), "dir", artifactsDir)
		} else {
			log.Error("failed to hash file", "package", decision.Entry.Package(), "error", err)
		}
	}

	return component
}

// componentLicenses prefers the license decided for ip_log.xml and falls back to what the
// artifact declares.
func componentLicenses(decision iplog.Decision, declared []pom.License) cdx.Licenses {
	switch {
	case decision.License != nil:
		license := &cdx.License{URL: decision.License.URL()}
		if decision.License.SPDX != "" {
			license.ID = decision.License.SPDX
		} else {
			license.Name = decision.License.Name
		}
		return cdx.Licenses{{License: license}}
	case decision.Preserved != nil:
		return cdx.Licenses{{License: &cdx.License{Name: decision.LicenseName()}}}
	}

	var ls cdx.Licenses
	for _, l := range declared {
		if l.Name == "" && l.URL == "" {
			continue
		}
		ls = append(ls, cdx.LicenseChoice{License: &cdx.License{Name: l.Name, URL: l.URL}})
	}
	return ls
}

func singleLicense(decisions []iplog.Decision) *cdx.LicenseChoice {
	if len(decisions) != 1 {
		return nil
	}
	ls := componentLicenses(decisions[0], nil)
	if len(ls) != 1 {
		return nil
	}
	return &ls[0]
}

func externalReferences(p *pom.Project) []cdx.ExternalReference {
	var refs []cdx.ExternalReference
	add := func(t cdx.ExternalReferenceType, url string) {
		if url != "" {
			refs = append(refs, cdx.ExternalReference{Type: t, URL: url})
		}
	}

	add(cdx.ERTypeWebsite, p.URL)
	if p.SCM != nil {
		add(cdx.ERTypeVCS, p.SCM.URL)
	}
	if p.IssueManagement != nil {
		add(cdx.ERTypeIssueTracker, p.IssueManagement.URL)
	}
	for _, list := range p.MailingLists {
		add(cdx.ERTypeMailingList, list.Archive)
	}
	return refs
}

func hashArtifact(dir string, fileName string) (string, error) {
	path, err := files.FindFile(dir, fileName)
	if err != nil {
		return "", err
	}
	return files.HashFileSha256(path)
}

func mavenPURL(groupID, artifactID, version string, qualifiers packageurl.Qualifiers) string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, groupID, artifactID, version, qualifiers, "").ToString()
}
