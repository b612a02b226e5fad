package iplog

import (
	"github.com/beevik/etree"

	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// Existing is what a previous ip_log.xml recorded, keyed by package (artifact file name).
type Existing struct {
	doc      *etree.Document
	CQs      map[string]string
	Licenses map[string]*etree.Element
	// Packages in document order
	Packages types.SliceSet[string]
}

// CollectExisting extracts CQ numbers and license elements per package. doc may be nil.
func CollectExisting(doc *etree.Document) *Existing {
	existing := &Existing{
		doc:      doc,
		CQs:      map[string]string{},
		Licenses: map[string]*etree.Element{},
	}

	for _, project := range projects(doc) {
		for _, legal := range project.SelectElements("legal") {
			pkg, ok := childText(legal, "package")
			if !ok {
				continue
			}
			existing.Packages = existing.Packages.Add(pkg)

			if ipzilla := legal.SelectElement("ipzilla"); ipzilla != nil {
				if attr := ipzilla.SelectAttr("bug_id"); attr != nil {
					existing.CQs[pkg] = attr.Value
				}
			}
			if license := legal.SelectElement("license"); license != nil {
				existing.Licenses[pkg] = license
			}
		}
	}

	return existing
}

func (e *Existing) projectAttribute(name string) (string, bool) {
	project := firstProject(e.doc)
	if project == nil {
		return "", false
	}
	attr := project.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

func (e *Existing) projectInfo(name string) (string, bool) {
	project := firstProject(e.doc)
	if project == nil {
		return "", false
	}
	return childText(project.SelectElement("info"), name)
}

func (e *Existing) contacts() []*etree.Element {
	project := firstProject(e.doc)
	if project == nil {
		return nil
	}
	return project.SelectElements("contact")
}

func (e *Existing) notes() *etree.Element {
	project := firstProject(e.doc)
	if project == nil {
		return nil
	}
	return project.SelectElement("notes")
}
