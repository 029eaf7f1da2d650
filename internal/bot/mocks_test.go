package bot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reportbot/backend/internal/localization"
	"reportbot/backend/internal/report"
	"reportbot/backend/internal/storage"
)

// MockSession is a testify double for the Session interface. Request
// options are ignored; expectations are set on the domain arguments only.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, messageID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockSession) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, targetID, targetType, allow, deny)
	return args.Error(0)
}

func (m *MockSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

func (m *MockSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Channel), args.Error(1)
}

func (m *MockSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(guildID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Member), args.Error(1)
}

func (m *MockSession) GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Role), args.Error(1)
}

func (m *MockSession) GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	args := m.Called(guildID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Role), args.Error(1)
}

func (m *MockSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	args := m.Called(guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockSession) GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error {
	args := m.Called(guildID, userID, reason)
	return args.Error(0)
}

func (m *MockSession) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	args := m.Called(guildID, userID, reason, days)
	return args.Error(0)
}

func (m *MockSession) UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	args := m.Called(userID, channelID)
	return args.Get(0).(int64), args.Error(1)
}

const (
	testGuildID   = "guild-1"
	testBotID     = "999"
	testReporter  = "100"
	testTarget    = "200"
	testModerator = "300"
	testOriginCh  = "chan-origin"
	testReportsCh = "chan-reportes"
)

// newTestService builds a Service over a mock session and a real
// file-backed store in a temp dir.
func newTestService(t *testing.T, sess Session) (*Service, *storage.Service) {
	t.Helper()
	store, err := storage.NewService(filepath.Join(t.TempDir(), "reports.json"))
	require.NoError(t, err)
	localizer, err := localization.NewLocalizer()
	require.NoError(t, err)

	return &Service{
		Session:       sess,
		Reports:       report.NewService(store),
		Localizer:     localizer,
		Registry:      NewPendingRegistry(),
		prompts:       newPromptTable(),
		prefix:        "!",
		lang:          "es",
		botUserID:     testBotID,
		reasonTimeout: 50 * time.Millisecond,
		ackTTL:        0,
	}, store
}

func reportsChannel() *discordgo.Channel {
	return &discordgo.Channel{
		ID:   testReportsCh,
		Name: "reportes",
		Type: discordgo.ChannelTypeGuildText,
	}
}

func reactionEvent(userID, messageID, emoji string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{
			UserID:    userID,
			MessageID: messageID,
			ChannelID: testReportsCh,
			GuildID:   testGuildID,
			Emoji:     discordgo.Emoji{Name: emoji},
		},
	}
}

// grantManageMessages makes the mock report moderator-grade permissions for
// the user in the reports channel.
func grantManageMessages(sess *MockSession, userID string) {
	sess.On("UserChannelPermissions", userID, testReportsCh).
		Return(int64(discordgo.PermissionManageMessages), nil)
}

func commandMessage(authorID, channelID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "cmd-1",
			GuildID:   testGuildID,
			ChannelID: channelID,
			Content:   content,
			Author:    &discordgo.User{ID: authorID},
		},
	}
}
