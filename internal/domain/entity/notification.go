package entity

import "time"

type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a single auto-dismissing message shown after a user action.
type Notification struct {
	ID      string
	Kind    NotificationKind
	Text    string
	ShownAt time.Time
}
