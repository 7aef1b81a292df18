// Package ui defines the display surface the core talks to: transient
// notifications and blocking informational dialogs. The core never renders
// anything itself.
package ui

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier is the collaborator interface for user-visible output.
type Notifier interface {
	// Notify shows a transient message. Fire-and-forget.
	Notify(message string, severity Severity)

	// PromptBlockingMessage shows a message and blocks until the user
	// acknowledges it.
	PromptBlockingMessage(text string)
}
