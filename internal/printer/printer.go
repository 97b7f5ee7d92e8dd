package printer

import (
	"strings"

	"github.com/fatih/color"
)

type ColorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string

	colors []*color.Color
}

func NewColorPrinter() *ColorPrinter {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	warning := color.New(color.FgYellow)
	info := color.New(color.FgBlue)
	debug := color.New(color.FgCyan)

	return &ColorPrinter{
		Success: success.SprintfFunc(),
		Error:   failure.SprintfFunc(),
		Warning: warning.SprintfFunc(),
		Info:    info.SprintfFunc(),
		Debug:   debug.SprintfFunc(),
		colors:  []*color.Color{success, failure, warning, info, debug},
	}
}

// SetEnabled toggles ANSI colors (disabled for JSON logs and tests).
// Enabling never overrides color.NoColor detection for non-terminals.
func (p *ColorPrinter) SetEnabled(enabled bool) {
	for _, c := range p.colors {
		if enabled && !color.NoColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Status colors a persisted sync status string by its outcome.
func (p *ColorPrinter) Status(status string) string {
	switch {
	case status == "":
		return p.Warning("never synced")
	case strings.HasPrefix(status, "error"):
		return p.Error("%s", status)
	default:
		return p.Success("%s", status)
	}
}
