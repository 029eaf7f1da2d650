// Package config holds the tunable constants of the report workflow.
package config

import "time"

const (
	// Guild provisioning. Lookups are by name, so renaming these entities
	// on the guild side breaks the lookup.
	ReportsChannelName  = "reportes"
	ReportsChannelTopic = "Canal para reportes de usuarios"
	ModerationCategory  = "Moderación"
	MutedRoleName       = "Silenciado"

	// Triage flow
	ReasonTimeout   = 30 * time.Second
	AckSelfDestruct = 10 * time.Second
	ListingLimit    = 10
	BanDeleteDays   = 1

	// Embed colors
	ColorNewReport = 0xE67E22
	ColorResolved  = 0x2ECC71
	ColorDismissed = 0xE74C3C
	ColorMenu      = 0x3498DB
)

// Reaction vocabulary. Fixed, not configurable. EmojiMenu doubles as the
// ban confirmation on a moderation menu; the router disambiguates by
// pending-registration membership, never by the glyph itself.
const (
	EmojiResolve = "✅"
	EmojiDismiss = "❌"
	EmojiMenu    = "🔨"
	EmojiMute    = "🔇"
	EmojiKick    = "👢"
)
