package bot

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"reportbot/backend/internal/config"
	"reportbot/backend/internal/report"
)

var userMentionRe = regexp.MustCompile(`^<@!?(\d+)>$`)

// handleReportCommand records a new report and publishes its notice to the
// moderator channel.
func (s *Service) handleReportCommand(m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if len(args) < 2 {
		s.send(m.ChannelID, s.tf("report_usage", s.prefix))
		return
	}
	mtch := userMentionRe.FindStringSubmatch(args[0])
	if mtch == nil {
		s.send(m.ChannelID, s.tf("report_usage", s.prefix))
		return
	}
	targetID := mtch[1]
	if _, err := s.Session.GuildMember(m.GuildID, targetID); err != nil {
		s.send(m.ChannelID, s.t("member_missing"))
		return
	}
	reason := strings.TrimSpace(strings.Join(args[1:], " "))

	rec, err := s.Reports.File(m.GuildID, m.ChannelID, m.Author.ID, targetID, s.botUserID, reason)
	switch {
	case errors.Is(err, report.ErrSelfReport):
		s.send(m.ChannelID, s.t("self_report"))
		return
	case errors.Is(err, report.ErrBotReport):
		s.send(m.ChannelID, s.t("bot_report"))
		return
	case err != nil:
		log.Printf("ERROR: failed to record report in guild %s: %v", m.GuildID, err)
		return
	}

	if err := s.Session.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("WARN: failed to delete report command %s: %v", m.ID, err)
	}
	s.sendEphemeral(m.ChannelID, s.tf("report_ack", mention(m.Author.ID)))

	channel, err := s.ensureReportsChannel(m.GuildID)
	if err != nil {
		log.Printf("ERROR: failed to provision reports channel in guild %s: %v", m.GuildID, err)
		return
	}

	notice, err := s.Session.ChannelMessageSendEmbed(channel.ID, s.newReportNotice(rec))
	if err != nil {
		log.Printf("ERROR: failed to publish report %d notice: %v", rec.ID, err)
		return
	}
	for _, emoji := range []string{config.EmojiResolve, config.EmojiDismiss, config.EmojiMenu} {
		if err := s.Session.MessageReactionAdd(channel.ID, notice.ID, emoji); err != nil {
			log.Printf("WARN: failed to attach %s to notice %s: %v", emoji, notice.ID, err)
		}
	}
}

// ensureReportsChannel finds the moderator channel by name, creating it
// (and its category) with restricted visibility when absent. Idempotency
// is name-based only.
func (s *Service) ensureReportsChannel(guildID string) (*discordgo.Channel, error) {
	channels, err := s.Session.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == config.ReportsChannelName {
			return ch, nil
		}
	}

	var categoryID string
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == config.ModerationCategory {
			categoryID = ch.ID
			break
		}
	}
	if categoryID == "" {
		category, err := s.Session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name: config.ModerationCategory,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	}

	// The everyone role shares the guild's ID.
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: s.botUserID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel},
	}
	roles, err := s.Session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.Permissions&discordgo.PermissionManageMessages != 0 {
			overwrites = append(overwrites, &discordgo.PermissionOverwrite{
				ID:    role.ID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel,
			})
		}
	}

	return s.Session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 config.ReportsChannelName,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                config.ReportsChannelTopic,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites,
	})
}
