package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int    // -V, -VV, -VVV
	FlagQuiet        bool   // --quiet/-q
	FlagSilent       bool   // --silent/-s
	FlagJSON         bool   // --json-logs, for CI and daemons under a supervisor
	FlagLogFile      string // set by the daemon from config.yml
)

func ConfigureLoggerFromFlags() {
	var out io.Writer = os.Stdout
	var level string
	switch {
	case FlagQuiet:
		level = "error"
	case FlagSilent:
		level = "error"
		out = io.Discard
	default:
		switch FlagVerboseCount {
		case 0:
			level = "info"
		default:
			level = "debug"
		}
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON,
		Out:   out,
		File:  FlagLogFile,
	})
}
