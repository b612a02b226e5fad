package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
	"github.com/eclipse-ebr/ebr-cli/pkg/pom"
)

var matchCmd = &cobra.Command{
	Aliases: []string{"m"},
	Use:     "match [license name]",
	Short:   "Match a declared license against the known licenses",
	Long: `Match a license name and/or URL, as declared in a pom.xml, against the known licenses.

Exact names are matched first, then reference URLs and finally similar names (Jaro-Winkler
similarity of at least 0.9 for names and 0.99 for URLs). The similarity to every known
license is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run:  MatchCommand,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringP("url", "u", "", "License URL as declared in the pom.xml")
	matchCmd.Flags().Bool("json", false, "Output the match result as JSON")
	matchCmd.Flags().Bool("fail", false, "exit(1) if no known license matches")
}

func MatchCommand(cmd *cobra.Command, args []string) {
	flagURL, _ := cmd.Flags().GetString("url")
	flagJSON, _ := cmd.Flags().GetBool("json")
	flagFail, _ := cmd.Flags().GetBool("fail")

	declared := pom.License{URL: strings.TrimSpace(flagURL)}
	if len(args) > 0 {
		declared.Name = strings.TrimSpace(args[0])
	}
	if declared.Name == "" && declared.URL == "" {
		log.Fatal("a license name argument or --url is required")
	}

	matcher := licenses.NewMatcher(nil)
	match := matcher.MatchDeclared(declared)

	if flagJSON {
		if err := log.DumpTo(os.Stdout, matchResult(match)); err != nil {
			log.Fatal("failed to write match result", "err", err)
		}
	} else {
		fmt.Println()
		renderMatch(os.Stdout, matcher.Catalog(), match)
		fmt.Println()
	}

	if flagFail && !match.Found() {
		os.Exit(1)
	}
}

type matchOutput struct {
	Query        pom.License `json:"query"`
	License      string      `json:"license,omitempty"`
	SPDX         string      `json:"spdx,omitempty"`
	Reference    string      `json:"reference,omitempty"`
	Strategy     string      `json:"strategy"`
	Candidates   []string    `json:"candidates,omitempty"`
	DualLicensed bool        `json:"dualLicensed"`
}

func matchResult(match licenses.Match) matchOutput {
	out := matchOutput{
		Query:        match.Query,
		Strategy:     string(match.Strategy),
		Candidates:   match.Candidates.Strings(),
		DualLicensed: knownlicenses.IsDualLicense(match.Query.Name),
	}
	if match.License != nil {
		out.License = match.License.Name
		out.SPDX = match.License.SPDX
		out.Reference = match.License.URL()
	}
	return out
}

func renderMatch(w io.Writer, catalog *knownlicenses.Catalog, match licenses.Match) {
	isTerminalWriter := IsTerminalWriter(w)

	t := newTableWriter(w, isTerminalWriter)
	t.SetHeaders("Known license", "SPDX", "Name", "URL", "")
	for _, l := range catalog.Licenses() {
		nameScore, urlScore := l.Scores(match.Query.Name, match.Query.URL)

		marker := ""
		switch {
		case match.License == l:
			marker = colorizeStrategy(match.Strategy, isTerminalWriter)
		case match.Candidates.Contains(l):
			marker = colorizeStrategy(licenses.StrategyAmbiguous, isTerminalWriter)
		}

		t.AddRow(
			l.Name,
			l.SPDX,
			colorizeScore(fmt.Sprintf("%.2f", nameScore), nameScore, knownlicenses.SimilarNameThreshold, isTerminalWriter),
			colorizeScore(fmt.Sprintf("%.2f", urlScore), urlScore, knownlicenses.SimilarURLThreshold, isTerminalWriter),
			marker,
		)
	}

	_, _ = fmt.Fprintf(w, " -- Similarity to known licenses --\n")
	t.Render()
	_, _ = fmt.Fprintf(w, "\n")

	switch {
	case match.Found():
		_, _ = fmt.Fprintf(w, "Matched '%s' (%s) using strategy '%s'.\n", match.License.Name, match.License.URL(), match.Strategy)
	case match.Strategy == licenses.StrategyAmbiguous:
		_, _ = fmt.Fprintf(w, "Ambiguous match, candidates: %s. Please configure a license mapping.\n", strings.Join(match.Candidates.Strings(), ", "))
	default:
		_, _ = fmt.Fprintf(w, "No known license matches '%s'.\n", licenses.Describe([]pom.License{match.Query}))
	}

	if knownlicenses.IsDualLicense(match.Query.Name) {
		_, _ = fmt.Fprintf(w, "'%s' looks like a dual license, pick the license the artifact is used under.\n", match.Query.Name)
	}
}
