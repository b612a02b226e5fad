package log

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// NewProgressBar renders on stderr; silent (or debug logging) gets a bar that never draws.
func NewProgressBar(total int64, description string, silent bool) *progressbar.ProgressBar {
	if silent || IsDebug() {
		return progressbar.DefaultSilent(total, description)
	}

	return progressbar.NewOptions(int(total),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(25),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
