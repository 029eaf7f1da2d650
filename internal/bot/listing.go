package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"reportbot/backend/internal/config"
	"reportbot/backend/internal/models"
)

// handleReportsCommand renders the recent reports matching a status filter.
// Requires message-management permission.
func (s *Service) handleReportsCommand(m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if !s.hasManageMessages(m.Author.ID, m.ChannelID) {
		return
	}

	status := models.StatusPending
	if len(args) > 0 {
		status = args[0]
	}
	if !models.ValidStatusFilter(status) {
		s.send(m.ChannelID, s.t("invalid_status"))
		return
	}

	all, err := s.Reports.All(m.GuildID)
	if err != nil {
		log.Printf("ERROR: failed to list reports for guild %s: %v", m.GuildID, err)
		return
	}
	if len(all) == 0 {
		s.send(m.ChannelID, s.t("no_reports"))
		return
	}

	recent, err := s.Reports.Recent(m.GuildID, status, config.ListingLimit)
	if err != nil {
		log.Printf("ERROR: failed to list reports for guild %s: %v", m.GuildID, err)
		return
	}
	if len(recent) == 0 {
		s.send(m.ChannelID, s.tf("no_reports_status", status))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: s.tf("listing_title", status),
		Color: config.ColorMenu,
	}
	for _, rec := range recent {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: s.tf("list_entry_title", rec.ID),
			Value: s.tf("list_entry",
				s.memberLabel(m.GuildID, rec.ReportedUser),
				s.memberLabel(m.GuildID, rec.ReportedBy),
				rec.Reason,
				rec.Status,
				rec.Timestamp.Format("02/01/2006 15:04"),
			),
		})
	}
	if _, err := s.Session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("ERROR: failed to send report listing to channel %s: %v", m.ChannelID, err)
	}
}

// memberLabel renders a mention, or a placeholder when the member is no
// longer resolvable (left the server).
func (s *Service) memberLabel(guildID, userID string) string {
	if _, err := s.Session.GuildMember(guildID, userID); err != nil {
		return s.t("user_left_placeholder")
	}
	return mention(userID)
}
