package models

import "time"

// Report statuses. The stored values are Spanish to stay wire-compatible
// with the data files the bot has always written.
const (
	StatusPending   = "pendiente"
	StatusResolved  = "resuelto"
	StatusDismissed = "descartado"
	StatusAll       = "todos"
)

// Report is a single report filed against a guild member.
// ID is a durable per-guild monotonically increasing identifier assigned
// at creation; it is what notice footers render and what the reaction
// router parses back, so records can be looked up without relying on
// their slice position.
type Report struct {
	ID           int       `json:"report_id"`
	ReportedUser string    `json:"reported_user"`
	ReportedBy   string    `json:"reported_by"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	ChannelID    string    `json:"channel_id"`
	GuildID      string    `json:"guild_id"`
}

// ValidStatusFilter reports whether s is a known listing filter.
func ValidStatusFilter(s string) bool {
	switch s {
	case StatusPending, StatusResolved, StatusDismissed, StatusAll:
		return true
	}
	return false
}
