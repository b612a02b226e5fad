package knownlicenses

// KnownLicense is a license accepted by the Eclipse Foundation IP database.
type KnownLicense struct {
	Name string
	// KnownURLs are the reference URLs the license is published at, the first one is canonical.
	KnownURLs      []string
	AlternateNames []string
	// SPDX is empty for licenses without an SPDX identifier.
	SPDX string
}

// URL returns the canonical reference URL or an empty string.
func (l *KnownLicense) URL() string {
	if l == nil || len(l.KnownURLs) == 0 {
		return ""
	}
	return l.KnownURLs[0]
}

func (l *KnownLicense) String() string {
	if l == nil {
		return ""
	}
	return l.Name
}

func (l *KnownLicense) withAlternateNames(names ...string) *KnownLicense {
	l.AlternateNames = append(l.AlternateNames, names...)
	return l
}

func (l *KnownLicense) withSPDX(id string) *KnownLicense {
	l.SPDX = id
	return l
}
