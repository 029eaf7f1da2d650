// Package bot is the Discord-facing layer of the report workflow. It owns
// the command handlers, the reaction router and the interactive moderation
// flow, and talks to Discord through the narrow Session interface.
package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"reportbot/backend/internal/config"
	"reportbot/backend/internal/localization"
	"reportbot/backend/internal/report"
)

// Service receives gateway events and routes them to the report workflow.
type Service struct {
	Session   Session
	Reports   *report.Service
	Localizer *localization.Localizer
	Registry  *PendingRegistry

	// discord is the underlying gateway connection; nil under test.
	discord *discordgo.Session

	prompts       *promptTable
	prefix        string
	lang          string
	botUserID     string
	reasonTimeout time.Duration
	ackTTL        time.Duration
}

// Options carries the environment-driven settings of the bot.
type Options struct {
	Prefix string
	Lang   string
}

// NewService creates a Service bound to a fresh gateway session.
func NewService(token string, reports *report.Service, loc *localization.Localizer, opts Options) (*Service, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	svc := &Service{
		Session:       dg,
		Reports:       reports,
		Localizer:     loc,
		Registry:      NewPendingRegistry(),
		discord:       dg,
		prompts:       newPromptTable(),
		prefix:        opts.Prefix,
		lang:          opts.Lang,
		reasonTimeout: config.ReasonTimeout,
		ackTTL:        config.AckSelfDestruct,
	}

	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		svc.botUserID = r.User.ID
		log.Printf("✅ Logged in as %s", r.User.Username)
	})
	dg.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		svc.OnMessageCreate(m)
	})
	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		svc.OnReactionAdd(r)
	})

	return svc, nil
}

// Run opens the gateway connection.
func (s *Service) Run() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// OnMessageCreate routes incoming messages: replies to an open reason
// prompt are consumed first, then prefix commands are dispatched.
func (s *Service) OnMessageCreate(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.prompts.deliver(m.ChannelID, m.Author.ID, m.Content) {
		return
	}
	if !strings.HasPrefix(m.Content, s.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, s.prefix))
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "report":
		s.handleReportCommand(m, fields[1:])
	case "reports":
		s.handleReportsCommand(m, fields[1:])
	}
}

func (s *Service) t(key string) string {
	return s.Localizer.GetString(s.lang, key)
}

func (s *Service) tf(key string, args ...interface{}) string {
	return s.Localizer.Format(s.lang, key, args...)
}

// send posts a plain message, logging delivery failures.
func (s *Service) send(channelID, content string) {
	if _, err := s.Session.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("ERROR: failed to send message to channel %s: %v", channelID, err)
	}
}

// sendEphemeral posts a message that deletes itself after the ack TTL.
func (s *Service) sendEphemeral(channelID, content string) {
	msg, err := s.Session.ChannelMessageSend(channelID, content)
	if err != nil {
		log.Printf("ERROR: failed to send acknowledgment to channel %s: %v", channelID, err)
		return
	}
	if s.ackTTL <= 0 {
		return
	}
	time.AfterFunc(s.ackTTL, func() {
		if err := s.Session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.Printf("WARN: failed to delete acknowledgment %s: %v", msg.ID, err)
		}
	})
}

// hasManageMessages reports whether the user holds the message-management
// permission in the channel.
func (s *Service) hasManageMessages(userID, channelID string) bool {
	perms, err := s.Session.UserChannelPermissions(userID, channelID)
	if err != nil {
		log.Printf("WARN: failed to resolve permissions for %s in %s: %v", userID, channelID, err)
		return false
	}
	return perms&discordgo.PermissionManageMessages != 0
}
