package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/eclipse-ebr/ebr-cli/pkg/knownlicenses"
	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

var licensesCmd = &cobra.Command{
	Aliases: []string{"l"},
	Use:     "licenses",
	Short:   "List the licenses known to the Eclipse Foundation IP database",
	Long: `List the known licenses with their reference URLs, alternate names and SPDX identifiers.
Only these licenses can be recorded in an ip_log.xml or used in license mappings.`,
	Args: cobra.NoArgs,
	Run:  LicensesCommand,
}

func init() {
	rootCmd.AddCommand(licensesCmd)
	licensesCmd.Flags().BoolP("markdown", "m", false, "Output in markdown format (default: false)")
	licensesCmd.Flags().Bool("json", false, "Output as JSON")
}

func LicensesCommand(cmd *cobra.Command, args []string) {
	flagMarkdown, _ := cmd.Flags().GetBool("markdown")
	flagJSON, _ := cmd.Flags().GetBool("json")

	catalog := knownlicenses.Default()

	if flagJSON {
		if err := log.DumpTo(os.Stdout, catalog.Licenses()); err != nil {
			log.Fatal("failed to write licenses", "err", err)
		}
		return
	}

	renderLicenses(os.Stdout, catalog.Licenses(), flagMarkdown)
}

func renderLicenses(w io.Writer, known []*knownlicenses.KnownLicense, renderMarkdown bool) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "SPDX", "Reference", "Also known as"})
	for i, l := range known {
		t.AppendRow(table.Row{i + 1, l.Name, l.SPDX, strings.Join(l.KnownURLs, "\n"), strings.Join(l.AlternateNames, "\n")})
		if !renderMarkdown {
			t.AppendSeparator()
		}
	}
	t.AppendFooter(table.Row{len(known), "", "", "", ""})

	if renderMarkdown {
		_, _ = fmt.Fprintln(w, t.RenderMarkdown())
		return
	}

	t.SetStyle(table.StyleLight)
	_, _ = fmt.Fprintln(w, t.Render())
}
