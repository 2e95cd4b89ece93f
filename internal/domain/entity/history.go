package entity

import "time"

// HistoryEntry is an immutable snapshot of a generated configuration.
type HistoryEntry struct {
	ID         string
	Content    string
	Size       int
	Foreground string
	Background string
	CreatedAt  time.Time
}

// Label returns the human-readable creation time.
func (h HistoryEntry) Label() string {
	return h.CreatedAt.Format("02.01.2006 15:04:05")
}
