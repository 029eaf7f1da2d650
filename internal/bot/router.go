package bot

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"reportbot/backend/internal/config"
	"reportbot/backend/internal/models"
)

// OnReactionAdd is the entry point of the triage state machine. It guards
// the event, classifies the target message as a report notice or a pending
// moderation menu, and dispatches accordingly.
func (s *Service) OnReactionAdd(r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || r.UserID == s.botUserID {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}

	channel, err := s.Session.Channel(r.ChannelID)
	if err != nil || channel.Name != config.ReportsChannelName {
		return
	}
	if !s.hasManageMessages(r.UserID, r.ChannelID) {
		return
	}
	msg, err := s.Session.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil || len(msg.Embeds) == 0 {
		return
	}

	emoji := r.Emoji.Name

	// A registered message is a moderation menu regardless of the emoji;
	// the action handler validates the emoji itself.
	if _, ok := s.Registry.Get(r.MessageID); ok {
		s.handleModAction(emoji, msg, r.UserID, r.ChannelID, r.GuildID)
		return
	}

	switch emoji {
	case config.EmojiResolve, config.EmojiDismiss, config.EmojiMenu:
	default:
		return
	}

	reportID, ok := reportIDFromNotice(msg.Embeds[0])
	if !ok {
		return
	}

	switch emoji {
	case config.EmojiResolve:
		if err := s.Reports.Resolve(r.GuildID, reportID); err != nil {
			log.Printf("ERROR: failed to resolve report %d in guild %s: %v", reportID, r.GuildID, err)
			return
		}
		s.editNotice(r.ChannelID, r.MessageID,
			s.newTerminalNotice("resolved_title", "resolved_desc", config.ColorResolved, reportID))

	case config.EmojiDismiss:
		if err := s.Reports.Dismiss(r.GuildID, reportID); err != nil {
			log.Printf("ERROR: failed to dismiss report %d in guild %s: %v", reportID, r.GuildID, err)
			return
		}
		s.editNotice(r.ChannelID, r.MessageID,
			s.newTerminalNotice("dismissed_title", "dismissed_desc", config.ColorDismissed, reportID))

	case config.EmojiMenu:
		s.openActionMenu(r.GuildID, r.ChannelID, reportID)
	}
}

func (s *Service) editNotice(channelID, messageID string, embed *discordgo.MessageEmbed) {
	if _, err := s.Session.ChannelMessageEditEmbed(channelID, messageID, embed); err != nil {
		log.Printf("ERROR: failed to edit notice %s: %v", messageID, err)
	}
}

// openActionMenu posts the mute/kick/ban menu for the reported member and
// registers it. The registration, not rendered text, carries the target's
// identity. A target that already left the server is silently skipped.
func (s *Service) openActionMenu(guildID, channelID string, reportID int) {
	rec, err := s.Reports.Get(guildID, reportID)
	if err != nil {
		log.Printf("WARN: no stored report %d in guild %s: %v", reportID, guildID, err)
		return
	}
	if _, err := s.Session.GuildMember(guildID, rec.ReportedUser); err != nil {
		return
	}

	menu, err := s.Session.ChannelMessageSendEmbed(channelID, s.newActionMenu(rec.ReportedUser))
	if err != nil {
		log.Printf("ERROR: failed to post moderation menu for report %d: %v", reportID, err)
		return
	}

	action := models.PendingAction{
		Token:     uuid.NewString(),
		TargetID:  rec.ReportedUser,
		ReportID:  reportID,
		CreatedAt: time.Now().UTC(),
	}
	s.Registry.Put(menu.ID, action)
	log.Printf("Opened moderation menu %s (token %s) targeting user %s", menu.ID, action.Token, action.TargetID)

	for _, emoji := range []string{config.EmojiMute, config.EmojiKick, config.EmojiMenu} {
		if err := s.Session.MessageReactionAdd(channelID, menu.ID, emoji); err != nil {
			log.Printf("WARN: failed to attach %s to menu %s: %v", emoji, menu.ID, err)
		}
	}
}
