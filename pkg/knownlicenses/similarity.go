package knownlicenses

import (
	"math"
	"strings"

	"github.com/xrash/smetrics"
)

const (
	// SimilarNameThreshold is the minimum similarity for a name to be considered a match.
	SimilarNameThreshold = 0.9
	// SimilarURLThreshold is the minimum similarity for a URL to be considered a match.
	SimilarURLThreshold = 0.99

	boostThreshold = 0.7
	prefixSize     = 4
)

// Similarity is the Jaro-Winkler similarity of a and b rounded to two decimals.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	jw := smetrics.JaroWinkler(a, b, boostThreshold, prefixSize)
	return math.Round(jw*100) / 100
}

// IsSimilarName reports whether name is close enough to a catalog name.
func IsSimilarName(name, candidate string) bool {
	return Similarity(name, candidate) >= SimilarNameThreshold
}

// IsSimilarURL compares URLs ignoring the scheme, a leading "www." and trailing slashes.
func IsSimilarURL(url, candidate string) bool {
	return URLSimilarity(url, candidate) >= SimilarURLThreshold
}

func URLSimilarity(url, candidate string) float64 {
	return Similarity(normalizeURL(url), normalizeURL(candidate))
}

// Scores returns the best name similarity (canonical or alternate names) and the best URL
// similarity of l for the given query.
func (l *KnownLicense) Scores(name, url string) (nameScore float64, urlScore float64) {
	if name != "" {
		for _, candidate := range append([]string{l.Name}, l.AlternateNames...) {
			nameScore = max(nameScore, Similarity(name, candidate))
		}
	}
	if strings.TrimSpace(url) != "" {
		for _, candidate := range l.KnownURLs {
			urlScore = max(urlScore, URLSimilarity(url, candidate))
		}
	}
	return nameScore, urlScore
}

func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	lower := strings.ToLower(url)
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, prefix) {
			url = url[len(prefix):]
			lower = lower[len(prefix):]
			break
		}
	}
	if strings.HasPrefix(lower, "www.") {
		url = url[len("www."):]
	}
	return strings.TrimRight(url, "/")
}
