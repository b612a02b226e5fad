package cmd

import (
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/aquasecurity/table"
	"github.com/liamg/tml"

	"github.com/eclipse-ebr/ebr-cli/pkg/licenses"
)

func newTableWriter(w io.Writer, isTerminalWriter bool) *table.Table {
	t := table.New(w)

	if isTerminalWriter {
		availableWidth := 80
		if w == os.Stdout {
			width, _, _ := term.GetSize(int(os.Stdout.Fd()))
			if width > 0 {
				availableWidth = width
			}
		}
		if availableWidth > 200 {
			availableWidth = 200
		}
		t.SetAvailableWidth(availableWidth)
	}

	if isTerminalWriter {
		t.SetHeaderStyle(table.StyleBold)
		t.SetLineStyle(table.StyleDim)
	}

	return t
}

func IsTerminalWriter(output io.Writer) bool {
	if runtime.GOOS == "windows" {
		return false
	}

	if output != os.Stdout {
		return false
	}

	o, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (o.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}

func colorizeStrategy(strategy licenses.Strategy, colorize bool) string {
	if !colorize {
		return string(strategy)
	}
	switch strategy {
	case licenses.StrategyOverride, licenses.StrategyIpLog, licenses.StrategyExactName:
		return tml.Sprintf("<green>%s</green>", strategy)
	case licenses.StrategyURL, licenses.StrategySimilarName:
		return tml.Sprintf("<yellow>%s</yellow>", strategy)
	case licenses.StrategyAmbiguous:
		return tml.Sprintf("<magenta>%s</magenta>", strategy)
	default:
		return tml.Sprintf("<red>%s</red>", strategy)
	}
}

func colorizeFileStatus(status licenses.FileStatus, colorize bool) string {
	if !colorize {
		return string(status)
	}
	switch status {
	case licenses.FileStatusOK:
		return tml.Sprintf("<green>%s</green>", status)
	case licenses.FileStatusUnknown:
		return tml.Sprintf("<gray>%s</gray>", status)
	case licenses.FileStatusMismatch:
		return tml.Sprintf("<yellow>%s</yellow>", status)
	default:
		return tml.Sprintf("<red>%s</red>", status)
	}
}

// colorizeScore highlights similarity scores that reach threshold.
func colorizeScore(text string, score float64, threshold float64, colorize bool) string {
	if !colorize {
		return text
	}
	switch {
	case score >= threshold:
		return tml.Sprintf("<green>%s</green>", text)
	case score >= threshold-0.1:
		return tml.Sprintf("<yellow>%s</yellow>", text)
	default:
		return tml.Sprintf("<gray>%s</gray>", text)
	}
}
