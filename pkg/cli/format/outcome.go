package format

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/rzbill/opsweep/pkg/types"
)

// Outcome styles
var (
	successStyle = color.New(color.FgGreen, color.Bold)
	skippedStyle = color.New(color.FgWhite)
	warningStyle = color.New(color.FgYellow, color.Bold)
	failedStyle  = color.New(color.FgRed, color.Bold)
)

// OutcomeLabel colorizes a per-target outcome.
func OutcomeLabel(outcome types.Outcome) string {
	if !useColor {
		return string(outcome)
	}
	switch outcome {
	case types.OutcomeSuccess:
		return successStyle.Sprint(string(outcome))
	case types.OutcomeSkipped:
		return skippedStyle.Sprint(string(outcome))
	case types.OutcomeWarning:
		return warningStyle.Sprint(string(outcome))
	case types.OutcomeFailed:
		return failedStyle.Sprint(string(outcome))
	default:
		return string(outcome)
	}
}

// TermWidth returns the terminal width, or a sane default when stdout is
// not a terminal.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100
	}
	return width
}
