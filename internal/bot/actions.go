package bot

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"reportbot/backend/internal/config"
)

// handleModAction runs the interactive part of a moderation action: reason
// collection, dispatch, and consumption of the pending registration. The
// registration is consumed exactly once on every terminal path; an invalid
// emoji or a missing registration leaves it untouched.
func (s *Service) handleModAction(emoji string, msg *discordgo.Message, moderatorID, channelID, guildID string) {
	switch emoji {
	case config.EmojiMute, config.EmojiKick, config.EmojiMenu:
	default:
		return
	}
	action, ok := s.Registry.Get(msg.ID)
	if !ok {
		return
	}
	defer func() {
		if s.Registry.Remove(msg.ID) {
			log.Printf("Consumed moderation menu %s (token %s)", msg.ID, action.Token)
		}
	}()

	if _, err := s.Session.GuildMember(guildID, action.TargetID); err != nil {
		s.send(channelID, s.t("member_missing"))
		return
	}

	wait := s.prompts.register(channelID, moderatorID)
	s.send(channelID, s.tf("reason_prompt", mention(moderatorID)))
	reason, err := wait(s.reasonTimeout)
	if err != nil {
		s.send(channelID, s.t("timeout"))
		return
	}

	var actionKey string
	switch emoji {
	case config.EmojiMute:
		err = s.muteMember(guildID, action.TargetID, reason)
		actionKey = "action_muted"
	case config.EmojiKick:
		err = s.Session.GuildMemberDeleteWithReason(guildID, action.TargetID, reason)
		actionKey = "action_kicked"
	case config.EmojiMenu:
		err = s.Session.GuildBanCreateWithReason(guildID, action.TargetID, reason, config.BanDeleteDays)
		actionKey = "action_banned"
	}
	if err != nil {
		if isForbidden(err) {
			s.send(channelID, s.t("forbidden"))
		} else {
			s.send(channelID, s.tf("action_error", err))
		}
		return
	}

	confirmation := s.newConfirmation(action.TargetID, moderatorID, s.t(actionKey), reason)
	if _, err := s.Session.ChannelMessageSendEmbed(channelID, confirmation); err != nil {
		log.Printf("ERROR: failed to send confirmation for menu %s: %v", msg.ID, err)
	}
}

// muteMember grants the muted role, provisioning it on first use with a
// deny-send/deny-react override on every guild channel. Provisioning walks
// all channels sequentially and can be slow on large guilds.
func (s *Service) muteMember(guildID, targetID, reason string) error {
	roles, err := s.Session.GuildRoles(guildID)
	if err != nil {
		return err
	}
	var muted *discordgo.Role
	for _, role := range roles {
		if role.Name == config.MutedRoleName {
			muted = role
			break
		}
	}

	if muted == nil {
		muted, err = s.Session.GuildRoleCreate(guildID,
			&discordgo.RoleParams{Name: config.MutedRoleName},
			discordgo.WithAuditLogReason(s.t("muted_role_reason")))
		if err != nil {
			return err
		}
		channels, err := s.Session.GuildChannels(guildID)
		if err != nil {
			return err
		}
		deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionAddReactions)
		for _, ch := range channels {
			if err := s.Session.ChannelPermissionSet(ch.ID, muted.ID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
				return fmt.Errorf("failed to restrict channel %s: %w", ch.ID, err)
			}
		}
	}

	return s.Session.GuildMemberRoleAdd(guildID, targetID, muted.ID, discordgo.WithAuditLogReason(reason))
}

// isForbidden reports whether err is a Discord 403, meaning the bot lacks
// the platform privilege for the attempted action.
func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusForbidden
}
