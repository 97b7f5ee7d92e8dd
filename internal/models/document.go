package models

import "time"

const DocumentVersion = "1.0"

type Icon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Favicon     string `json:"favicon,omitempty"`
	BorderColor string `json:"borderColor,omitempty"`
}

type Tab struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Icons []Icon `json:"icons"`
}

// Config is the structure/content channel of the document.
type Config struct {
	Tabs []Tab `json:"tabs"`
}

// IconCount returns the number of icons across all tabs.
func (c Config) IconCount() int {
	n := 0
	for _, t := range c.Tabs {
		n += len(t.Icons)
	}
	return n
}

type IconStat struct {
	TotalClicks int     `json:"totalClicks"`
	Timestamps  []int64 `json:"timestamps"`
}

// Statistics is the click-counter channel of the document.
type Statistics struct {
	IconStats map[string]IconStat `json:"iconStats"`
}

// Document is the full local dataset. UpdateTimestamp versions Config,
// StatsTimestamp versions Statistics; both are epoch milliseconds.
type Document struct {
	Version         string     `json:"version"`
	Config          Config     `json:"config"`
	Statistics      Statistics `json:"statistics"`
	UpdateTimestamp int64      `json:"update_timestamp"`
	StatsTimestamp  int64      `json:"stats_timestamp"`
}

// NewDocument returns the first-run document: a single empty Home tab and no stats.
func NewDocument(now time.Time) Document {
	return Document{
		Version: DocumentVersion,
		Config: Config{Tabs: []Tab{{
			ID:    "tab-" + formatMillis(now.UnixMilli()),
			Name:  "Home",
			Order: 0,
			Icons: []Icon{},
		}}},
		Statistics: Statistics{IconStats: map[string]IconStat{}},
	}
}

// Normalize fills nil collections left by older or hand-edited documents.
func (d *Document) Normalize() {
	if d.Version == "" {
		d.Version = DocumentVersion
	}
	if d.Config.Tabs == nil {
		d.Config.Tabs = []Tab{}
	}
	if d.Statistics.IconStats == nil {
		d.Statistics.IconStats = map[string]IconStat{}
	}
}
