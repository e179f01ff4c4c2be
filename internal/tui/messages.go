package tui

import (
	"setproxy/internal/conncheck"
	"setproxy/internal/core/types"
)

// Data loading messages.

type statusLoadedMsg struct {
	statuses []types.ProtocolStatus
	summary  string
	enabled  bool
	err      error
}

type servicesLoadedMsg struct {
	services []string
	err      error
}

type settingsLoadedMsg struct {
	settings map[string]string
	err      error
}

// Operation lifecycle messages.

type opResultMsg struct {
	action  string // "enable" or "disable"
	enabled bool
	err     error
}

type testResultMsg struct {
	result conncheck.Result
}

// Persistence messages.

type profileSavedMsg struct {
	err error
}

type settingSavedMsg struct {
	key string
	err error
}

// Status polling message.

type statusTickMsg struct{}

// Notification message.

type clearNotificationMsg struct {
	version int
}
