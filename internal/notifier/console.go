package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/printer"
	"github.com/MrSnakeDoc/navsync/internal/utils"
)

const (
	borderColor = "\033[38;5;39m"
	resetColor  = "\033[0m"
	padding     = 2
)

// Console prints each event as a framed banner on a terminal.
type Console struct {
	Out io.Writer
}

func (c Console) Name() string { return "console" }

func (c Console) Deliver(_ context.Context, ev Event) error {
	return DisplayBanner(c.Out, ev)
}

// DisplayBanner writes ev as a centered, boxed notice.
func DisplayBanner(w io.Writer, ev Event) error {
	p := printer.NewColorPrinter()

	title := p.Info("Sync notice")
	if ev.Kind == KindRefresh {
		title = p.Success("Bookmarks updated from remote")
	}
	lines := []string{title, p.Warning("%s", ev.Message)}

	maxWidth := utils.GetMaxWidth(lines) + padding*2
	var b strings.Builder
	b.WriteString(borderColor + "╭" + strings.Repeat("─", maxWidth) + "╮" + resetColor + "\n")
	side := borderColor + "│" + resetColor
	for _, line := range lines {
		visible := len([]rune(utils.StripANSI(line)))
		left := (maxWidth - visible) / 2
		right := maxWidth - visible - left
		fmt.Fprintf(&b, "%s%s%s%s%s\n", side, strings.Repeat(" ", left), line, strings.Repeat(" ", right), side)
	}
	b.WriteString(borderColor + "╰" + strings.Repeat("─", maxWidth) + "╯" + resetColor + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
