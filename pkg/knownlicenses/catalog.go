package knownlicenses

import (
	"slices"
	"strings"

	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

// Catalog is an ordered, read-only collection of known licenses.
type Catalog struct {
	licenses []*KnownLicense
	byName   map[string]*KnownLicense
}

var defaultCatalog = newDefaultCatalog()

// Default returns the catalog of licenses known to the Eclipse Foundation IP database.
func Default() *Catalog {
	return defaultCatalog
}

func newDefaultCatalog() *Catalog {
	c := NewCatalog()
	c.add("Apache Software License 1.1", "http://www.apache.org/licenses/LICENSE-1.1").
		withAlternateNames("Apache License, Version 1.0").
		withSPDX("Apache-1.1")
	c.add("Custom license based on Apache Software License 1.1", "(see about_files)")
	c.add("Apache License, 2.0",
		"http://www.apache.org/licenses/LICENSE-2.0.txt",
		"http://www.apache.org/licenses/LICENSE-2.0",
		"http://www.apache.org/licenses/LICENSE-2.0.html",
		"http://opensource.org/licenses/Apache-2.0").
		withSPDX("Apache-2.0")

	c.add("New BSD license", "http://opensource.org/licenses/BSD-3-Clause").
		withAlternateNames("The BSD 3-Clause License", "BSD New", "New BSD").
		withSPDX("BSD-3-Clause")

	c.add("Common Development and Distribution License",
		"https://glassfish.java.net/public/CDDLv1.0.html",
		"http://opensource.org/licenses/CDDL-1.0").
		withAlternateNames("CDDL").
		withSPDX("CDDL-1.0")
	c.add("Common Public License 1.0",
		"http://opensource.org/licenses/cpl1.0.php",
		"http://www.ibm.com/developerworks/library/os-cpl.html").
		withAlternateNames("CPL").
		withSPDX("CPL-1.0")

	c.add("Eclipse Public License", "http://www.eclipse.org/legal/epl-v10.html").
		withAlternateNames("EPL").
		withSPDX("EPL-1.0")

	c.add("MIT license", "http://opensource.org/licenses/MIT").withSPDX("MIT")

	c.add("Mozilla Public License 1.0 (MPL)", "https://www.mozilla.org/MPL/1.0/").withSPDX("MPL-1.0")
	c.add("Mozilla Public License 1.1 (MPL)", "https://www.mozilla.org/MPL/1.1/").withSPDX("MPL-1.1")
	c.add("Public Domain", "https://creativecommons.org/publicdomain/zero/1.0/").withSPDX("CC0-1.0")
	c.add("SUN Industry Standards Source License 1.2", "http://gridscheduler.sourceforge.net/Gridengine_SISSL_license.html").
		withAlternateNames("SISSL-1.2").
		withSPDX("SISSL-1.2")
	c.add("Java Cup License (MIT Style)", "http://www2.cs.tum.edu/projekte/cup/licence.php")
	return c
}

// NewCatalog creates an empty catalog, mostly useful for tests.
func NewCatalog(licenses ...*KnownLicense) *Catalog {
	c := &Catalog{byName: map[string]*KnownLicense{}}
	for _, l := range licenses {
		c.licenses = append(c.licenses, l)
		c.byName[l.Name] = l
	}
	return c
}

func (c *Catalog) add(name string, knownURLs ...string) *KnownLicense {
	l := &KnownLicense{Name: name, KnownURLs: knownURLs}
	c.licenses = append(c.licenses, l)
	c.byName[name] = l
	return l
}

// Licenses returns the catalog entries in catalog order.
func (c *Catalog) Licenses() []*KnownLicense {
	return slices.Clone(c.licenses)
}

// ByName looks up a license by its exact canonical name.
func (c *Catalog) ByName(name string) *KnownLicense {
	return c.byName[name]
}

// FindByURL returns the first license with a known URL similar to url.
func (c *Catalog) FindByURL(url string) *KnownLicense {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	for _, l := range c.licenses {
		for _, knownURL := range l.KnownURLs {
			if IsSimilarURL(url, knownURL) {
				return l
			}
		}
	}
	return nil
}

// FindSimilarByName returns every license whose canonical or alternate name is similar to name.
func (c *Catalog) FindSimilarByName(name string) types.SliceSet[*KnownLicense] {
	var similar types.SliceSet[*KnownLicense]
	if name == "" {
		return similar
	}
	for _, l := range c.licenses {
		if IsSimilarName(name, l.Name) {
			similar = similar.Add(l)
			continue
		}
		for _, alternateName := range l.AlternateNames {
			if IsSimilarName(name, alternateName) {
				similar = similar.Add(l)
				break
			}
		}
	}
	return similar
}

// Names returns all canonical names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.licenses))
	for _, l := range c.licenses {
		names = append(names, l.Name)
	}
	slices.Sort(names)
	return names
}

// IsDualLicense reports whether a declared license name describes a GPL/CDDL dual license
// (for example "CDDL+GPL License").
func IsDualLicense(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "GPL") && strings.Contains(upper, "CDDL")
}
