package iplog

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// Entry is a third-party dependency of a recipe together with its effective descriptor.
// Model may be nil when the descriptor could not be found.
type Entry struct {
	Dependency pom.Dependency
	Model      *pom.Project
}

func (e Entry) Package() string {
	return e.Dependency.FileName()
}

func (e Entry) DeclaredLicenses() []pom.License {
	if e.Model == nil {
		return nil
	}
	return e.Model.Licenses
}

// Decision records the legal information written for one package.
type Decision struct {
	Entry    Entry
	CQ       string
	License  *knownlicenses.KnownLicense
	Strategy licenses.Strategy
	// Preserved is set when an unknown license of the existing ip_log.xml was kept as is.
	Preserved *etree.Element
}

func (d Decision) HasLicense() bool {
	return d.License != nil || d.Preserved != nil
}

// LicenseName is the license recorded for the package, if any.
func (d Decision) LicenseName() string {
	if d.License != nil {
		return d.License.Name
	}
	if d.Preserved != nil {
		name, _ := childText(d.Preserved, "name")
		return name
	}
	return ""
}

type Generator struct {
	resolver *licenses.Resolver
}

func NewGenerator(resolver *licenses.Resolver) *Generator {
	if resolver == nil {
		resolver = licenses.NewResolver(nil)
	}
	return &Generator{resolver: resolver}
}

// Decide picks the license for a package: an explicit mapping, then the license already recorded
// in ip_log.xml and finally the licenses declared in the artifact's descriptor.
func (g *Generator) Decide(entry Entry, existing *Existing) Decision {
	decision := Decision{
		Entry:    entry,
		CQ:       strings.TrimSpace(existing.CQs[entry.Package()]),
		Strategy: licenses.StrategyNone,
	}
	d := entry.Dependency

	if l := g.resolver.License(d); l != nil {
		log.Debugf("Found configured license '%s' for artifact %s.", l.Name, d.ArtifactID)
		decision.License, decision.Strategy = l, licenses.StrategyOverride
		return decision
	}

	if existingLicense := existing.Licenses[entry.Package()]; existingLicense != nil {
		if name, ok := childText(existingLicense, "name"); ok && name != "" {
			if l := g.resolver.Catalog().ByName(name); l != nil {
				log.Debugf("Found exact license '%s' match based on existing ip_log.xml for artifact %s.", l.Name, d.ArtifactID)
				decision.License, decision.Strategy = l, licenses.StrategyIpLog
				return decision
			}
			log.Warnf("License '%s' recorded in ip_log.xml for artifact %s is not a known license. Keeping it as is.", name, d)
			decision.Preserved, decision.Strategy = existingLicense, licenses.StrategyIpLog
			return decision
		}
	}

	if match, ok := g.resolver.MatchFirst(entry.DeclaredLicenses()); ok {
		log.Warnf("Detected '%s' for artifact license '%s (%s)'. Please verify the license correctness and consider configuring a static mapping for reproducible results.", match.License.Name, match.Query.Name, match.Query.URL)
		decision.License, decision.Strategy = match.License, match.Strategy
	}

	return decision
}

// Generate builds a new ip_log.xml for the recipe. Values recorded in existing (may be nil) win
// over values derived from the recipe; contacts and notes are copied verbatim.
func (g *Generator) Generate(recipe *pom.Project, entries []Entry, existingDoc *etree.Document) (*etree.Document, []Decision, error) {
	existing := CollectExisting(existingDoc)

	doc, root := newDocument()
	project := root.CreateElement("project")
	project.CreateAttr("id", recipe.ArtifactID)

	version, ok := existing.projectAttribute("version")
	if !ok {
		var err error
		version, err = projectVersion(recipe)
		if err != nil {
			return nil, nil, err
		}
	}
	project.CreateAttr("version", version)
	project.CreateAttr("status", "done")

	g.appendInfo(project, recipe, existing)

	if contacts := existing.contacts(); len(contacts) > 0 {
		for _, contact := range contacts {
			project.AddChild(contact.Copy())
		}
	} else {
		contact := project.CreateElement("contact")
		createChild(contact, "name", "", true)
		createChild(contact, "email", "", true)
		createChild(contact, "company", "", true)
	}

	if notes := existing.notes(); notes != nil {
		project.AddChild(notes.Copy())
	}

	var decisions []Decision
	for _, entry := range orderEntries(entries, existing) {
		decision := g.Decide(entry, existing)
		if decision.CQ == "" {
			log.Warnf("Missing CQ for artifact %s. Please visit portal.eclipse.org and file a CQ with IPzilla!", entry.Dependency)
		}
		appendLegal(project, decision)
		decisions = append(decisions, decision)
	}

	return doc, decisions, nil
}

func (g *Generator) appendInfo(project *etree.Element, recipe *pom.Project, existing *Existing) {
	info := project.CreateElement("info")

	name, ok := existing.projectInfo("name")
	if !ok {
		name, ok = recipe.Name, recipe.Name != ""
	}
	createChild(info, "name", name, ok)

	origin, ok := existing.projectInfo("origin")
	if !ok {
		origin, ok = projectOrigin(recipe)
	}
	createChild(info, "origin", origin, ok)

	reference, ok := existing.projectInfo("reference")
	if !ok {
		reference, ok = recipe.URL, recipe.URL != ""
	}
	createChild(info, "reference", reference, ok)

	repository, location, _ := splitRepository(recipe)
	if v, ok := existing.projectInfo("repository"); ok {
		repository = v
	}
	if v, ok := existing.projectInfo("location"); ok {
		location = v
	}
	createChild(info, "repository", repository, true)
	createChild(info, "location", location, true)

	tag, ok := existing.projectInfo("tag")
	createChild(info, "tag", tag, ok)
}

func appendLegal(project *etree.Element, decision Decision) {
	legal := project.CreateElement("legal")
	legal.CreateElement("ipzilla").CreateAttr("bug_id", decision.CQ)

	switch {
	case decision.License != nil:
		license := legal.CreateElement("license")
		createChild(license, "name", decision.License.Name, true)
		createChild(license, "reference", decision.License.URL(), true)
	case decision.Preserved != nil:
		legal.AddChild(decision.Preserved.Copy())
	default:
		legal.CreateElement("license")
		log.Warnf("No licensing information found for artifact %s. Please fill in information in ip_log.xml manually!", decision.Entry.Dependency)
	}

	createChild(legal, "package", decision.Entry.Package(), true)
}

// orderEntries keeps packages known to the existing log in their recorded order and appends new
// ones in dependency order. Recorded packages that are no longer dependencies are reported.
// Every entry is kept, also when artifacts of different groups share a package file name.
func orderEntries(entries []Entry, existing *Existing) []Entry {
	byPackage := map[string][]Entry{}
	var current types.SliceSet[string]
	for _, e := range entries {
		pkg := e.Package()
		if others := byPackage[pkg]; len(others) > 0 {
			log.Warnf("Artifacts %s and %s share the package name '%s'. Both are recorded, please check their CQs in ip_log.xml.", others[0].Dependency, e.Dependency, pkg)
		}
		byPackage[pkg] = append(byPackage[pkg], e)
		current = current.Add(pkg)
	}

	for _, stale := range existing.Packages.Distinct(current) {
		log.Warnf("Package '%s' is recorded in ip_log.xml but no longer a dependency. Dropping it.", stale)
	}

	ordered := make([]Entry, 0, len(entries))
	for _, pkg := range existing.Packages {
		ordered = append(ordered, byPackage[pkg]...)
	}
	for _, pkg := range current.Distinct(existing.Packages) {
		ordered = append(ordered, byPackage[pkg]...)
	}
	return ordered
}
