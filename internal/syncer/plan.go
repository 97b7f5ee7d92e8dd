package syncer

import "strings"

type Action string

const (
	ActionNone Action = "none"
	ActionPush Action = "push"
	ActionPull Action = "pull"
)

// decide applies last-write-wins to one channel. Equal timestamps never
// transfer, which keeps repeated checks free of writes.
func decide(local, remote int64) Action {
	switch {
	case local > remote:
		return ActionPush
	case local < remote:
		return ActionPull
	default:
		return ActionNone
	}
}

func summarize(cfg, stats Action) string {
	var parts []string
	switch cfg {
	case ActionPush:
		parts = append(parts, "config pushed")
	case ActionPull:
		parts = append(parts, "config pulled")
	}
	switch stats {
	case ActionPush:
		parts = append(parts, "stats pushed")
	case ActionPull:
		parts = append(parts, "stats pulled")
	}
	if len(parts) == 0 {
		return "success: already up to date"
	}
	return "success: " + strings.Join(parts, ", ")
}
