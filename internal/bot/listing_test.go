package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func grantOriginPerms(sess *MockSession, userID string, perms int64) {
	sess.On("UserChannelPermissions", userID, testOriginCh).Return(perms, nil)
}

// TestReportsCommandRequiresPermission verifies plain members get no listing
// and no reply at all.
func TestReportsCommandRequiresPermission(t *testing.T) {
	sess := &MockSession{}
	svc, _ := newTestService(t, sess)
	grantOriginPerms(sess, testReporter, 0)

	svc.OnMessageCreate(commandMessage(testReporter, testOriginCh, "!reports"))

	sess.AssertNotCalled(t, "ChannelMessageSend", mock.Anything, mock.Anything)
	sess.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func TestReportsCommandEmptyStore(t *testing.T) {
	sess := &MockSession{}
	svc, _ := newTestService(t, sess)
	grantOriginPerms(sess, testModerator, int64(discordgo.PermissionManageMessages))
	sess.On("ChannelMessageSend", testOriginCh, mock.Anything).
		Return(&discordgo.Message{ID: "reply-1"}, nil)

	svc.OnMessageCreate(commandMessage(testModerator, testOriginCh, "!reports"))

	assert.Equal(t, svc.t("no_reports"), lastSentContent(sess))
}

func TestReportsCommandInvalidStatus(t *testing.T) {
	sess := &MockSession{}
	svc, _ := newTestService(t, sess)
	grantOriginPerms(sess, testModerator, int64(discordgo.PermissionManageMessages))
	sess.On("ChannelMessageSend", testOriginCh, mock.Anything).
		Return(&discordgo.Message{ID: "reply-1"}, nil)

	svc.OnMessageCreate(commandMessage(testModerator, testOriginCh, "!reports cerrado"))

	assert.Equal(t, svc.t("invalid_status"), lastSentContent(sess))
}

func TestReportsCommandNoMatchesForStatus(t *testing.T) {
	sess := &MockSession{}
	svc, _ := newTestService(t, sess)
	fileReport(t, svc, testTarget)
	grantOriginPerms(sess, testModerator, int64(discordgo.PermissionManageMessages))
	sess.On("ChannelMessageSend", testOriginCh, mock.Anything).
		Return(&discordgo.Message{ID: "reply-1"}, nil)

	svc.OnMessageCreate(commandMessage(testModerator, testOriginCh, "!reports resuelto"))

	assert.Equal(t, svc.tf("no_reports_status", "resuelto"), lastSentContent(sess))
	sess.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

// TestReportsCommandListing verifies newest-first entries and the
// placeholder for members who already left.
func TestReportsCommandListing(t *testing.T) {
	sess := &MockSession{}
	svc, _ := newTestService(t, sess)
	fileReport(t, svc, "201")
	fileReport(t, svc, "202")
	fileReport(t, svc, "203")

	grantOriginPerms(sess, testModerator, int64(discordgo.PermissionManageMessages))
	// User 202 has left the server; everyone else resolves.
	sess.On("GuildMember", testGuildID, "202").Return(nil, errors.New("unknown member"))
	sess.On("GuildMember", testGuildID, mock.Anything).
		Return(&discordgo.Member{}, nil)
	sess.On("ChannelMessageSendEmbed", testOriginCh, mock.Anything).
		Return(&discordgo.Message{ID: "listing-1"}, nil)

	svc.OnMessageCreate(commandMessage(testModerator, testOriginCh, "!reports"))

	embed := sess.Calls[len(sess.Calls)-1].Arguments.Get(1).(*discordgo.MessageEmbed)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, svc.tf("list_entry_title", 3), embed.Fields[0].Name)
	assert.Equal(t, svc.tf("list_entry_title", 1), embed.Fields[2].Name)
	assert.Contains(t, embed.Fields[1].Value, svc.t("user_left_placeholder"))
	assert.Contains(t, embed.Fields[0].Value, mention("203"))
	assert.Contains(t, embed.Fields[0].Value, mention(testReporter))
}
