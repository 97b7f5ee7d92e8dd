package version

import (
	"fmt"
	"io"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/navsync/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
)

func Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "navsync - cross-device bookmark sync")
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-10s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
