package model

import "github.com/google/uuid"

type (
	// Severity tags a transient user notice.
	Severity string

	// Notice is a non-blocking transient notification for the presentation layer.
	Notice struct {
		ID       string
		Severity Severity
		Message  string
	}

	// Notifier delivers notices to whatever presentation adapter is bound.
	Notifier func(Notice)
)

const (
	SeveritySuccess Severity = "exito"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "advertencia"
)

// NewNotice builds a notice with a fresh id (notices are keyed for dismissal).
func NewNotice(severity Severity, message string) Notice {
	return Notice{
		ID:       uuid.New().String(),
		Severity: severity,
		Message:  message,
	}
}

// DiscardNotices is a Notifier that drops everything (headless/test use).
func DiscardNotices(Notice) {}
