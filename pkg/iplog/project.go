package iplog

import (
	"fmt"
	"html"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
)

// projectVersion strips -SNAPSHOT and normalises the recipe version to major.minor.micro.
func projectVersion(recipe *pom.Project) (string, error) {
	raw := strings.TrimSuffix(recipe.Version, "-SNAPSHOT")

	// OSGi style versions may carry a fourth, qualifier segment
	segments := strings.SplitN(raw, ".", 4)
	if len(segments) > 3 {
		segments = segments[:3]
	}

	v, err := semver.ParseTolerant(strings.Join(segments, "."))
	if err != nil {
		return "", fmt.Errorf("invalid recipe version '%s': %w", recipe.Version, err)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch), nil
}

// projectOrigin prefers the organization and falls back to the developers.
func projectOrigin(recipe *pom.Project) (string, bool) {
	if org := recipe.Organization; org != nil {
		if strings.TrimSpace(org.Name) != "" {
			return html.EscapeString(org.Name), true
		}
		if strings.TrimSpace(org.URL) != "" {
			return html.EscapeString(RemoveWebProtocols(org.URL)), true
		}
	}

	if recipe.HasDevelopers() {
		return DevelopersInfo(recipe.Developers), true
	}

	return "", false
}

// DevelopersInfo renders "A <a@x> (Org), B <b@x> and C <c@x>", HTML escaped.
func DevelopersInfo(developers []pom.Developer) string {
	var text strings.Builder
	for i, developer := range developers {
		switch {
		case i == 0:
		case i == len(developers)-1:
			text.WriteString(" and ")
		default:
			text.WriteString(", ")
		}
		text.WriteString(html.EscapeString(developer.Name))
		text.WriteString(" &lt;")
		text.WriteString(html.EscapeString(developer.Email))
		text.WriteString("&gt;")
		if strings.TrimSpace(developer.Organization) != "" {
			text.WriteString(" (")
			text.WriteString(html.EscapeString(developer.Organization))
			text.WriteString(")")
		}
	}
	return text.String()
}

func RemoveWebProtocols(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
}

// splitRepository splits an SCM URL into everything up to the last ".git" and the path after it.
func splitRepository(recipe *pom.Project) (repository string, location string, ok bool) {
	url := recipe.SCM.PreferredURL()
	if url == "" {
		return "", "", false
	}

	i := strings.LastIndex(url, ".git")
	if i < 0 {
		return url, url, true
	}
	return url[:i+len(".git")], strings.TrimPrefix(url[i+len(".git"):], "/"), true
}
