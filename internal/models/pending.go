package models

import "time"

// PendingAction links a moderation-menu notice to the member it targets.
// Registrations live only in process memory and are keyed by the menu
// message ID; a restart drops in-flight menus. Token is an opaque trace
// identifier that follows the registration through the log.
type PendingAction struct {
	Token     string
	TargetID  string
	ReportID  int
	CreatedAt time.Time
}
