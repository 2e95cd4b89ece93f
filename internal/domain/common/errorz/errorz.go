package errorz

import "errors"

var (
	ErrBusy                  = errors.New("another export is in progress")
	ErrNoVectorCode          = errors.New("no vector code is rendered")
	ErrUnknownPreset         = errors.New("unknown preset")
	ErrHistoryEntryNotFound  = errors.New("history entry not found")
	ErrShareCancelled        = errors.New("share cancelled")
	ErrCapabilityUnavailable = errors.New("platform capability unavailable")
	ErrInvalidInput          = errors.New("invalid input")
)
