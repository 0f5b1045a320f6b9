package state

import "github.com/thenoetrevino/rolodex/internal/tui/notifications"

// Notification is a single message shown in the status bar
type Notification struct {
	Level   notifications.Severity
	Message string
}

// NotificationState keeps the most recent notification. Any key press
// dismisses it.
type NotificationState struct {
	current *Notification
}

// NewNotificationState creates a NotificationState with nothing to show
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add replaces the current notification
func (s *NotificationState) Add(level notifications.Severity, message string) {
	s.current = &Notification{Level: level, Message: message}
}

// Clear removes the current notification
func (s *NotificationState) Clear() {
	s.current = nil
}

// Current returns the notification to show, if any
func (s *NotificationState) Current() (Notification, bool) {
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}
