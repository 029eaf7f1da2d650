package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"reportbot/backend/internal/config"
	"reportbot/backend/internal/models"
)

func mention(userID string) string {
	return "<@" + userID + ">"
}

func channelMention(channelID string) string {
	return "<#" + channelID + ">"
}

// newReportNotice renders the public representation of a freshly filed
// report. The footer carries the stored report ID; everything the router
// needs later is recoverable from that ID alone.
func (s *Service) newReportNotice(r *models.Report) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       s.t("new_report_title"),
		Description: s.t("new_report_desc"),
		Color:       config.ColorNewReport,
		Timestamp:   r.Timestamp.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: s.t("field_reported"), Value: fmt.Sprintf("%s (%s)", mention(r.ReportedUser), r.ReportedUser)},
			{Name: s.t("field_reporter"), Value: fmt.Sprintf("%s (%s)", mention(r.ReportedBy), r.ReportedBy)},
			{Name: s.t("field_reason"), Value: r.Reason},
			{Name: s.t("field_channel"), Value: channelMention(r.ChannelID)},
			{Name: s.t("field_actions"), Value: s.t("report_actions_legend")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: s.tf("report_footer", r.ID)},
	}
}

// newTerminalNotice renders the closed state a triaged notice is edited to.
// The footer is kept so re-applied triage reactions stay idempotent instead
// of silently failing to parse.
func (s *Service) newTerminalNotice(titleKey, descKey string, color, reportID int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       s.t(titleKey),
		Description: s.t(descKey),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: s.tf("report_footer", reportID)},
	}
}

// newActionMenu renders the disposable mute/kick/ban menu for a target.
func (s *Service) newActionMenu(targetID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       s.t("menu_title"),
		Description: s.tf("menu_desc", mention(targetID)),
		Color:       config.ColorMenu,
		Fields: []*discordgo.MessageEmbedField{
			{Name: s.t("field_actions"), Value: s.t("menu_legend")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: s.tf("menu_footer", targetID)},
	}
}

// newConfirmation renders the outcome notice of an executed action.
func (s *Service) newConfirmation(targetID, moderatorID, actionLabel, reason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       s.t("confirm_title"),
		Description: s.tf("confirm_desc", actionLabel),
		Color:       config.ColorResolved,
		Fields: []*discordgo.MessageEmbedField{
			{Name: s.t("field_user"), Value: fmt.Sprintf("%s (%s)", mention(targetID), targetID)},
			{Name: s.t("field_moderator"), Value: mention(moderatorID)},
			{Name: s.t("field_reason"), Value: reason},
		},
	}
}

var footerIDRe = regexp.MustCompile(`(\d+)\s*$`)

// reportIDFromNotice recovers the stored report ID from a notice footer.
// The footer text is locale-dependent; the ID is its trailing integer.
func reportIDFromNotice(embed *discordgo.MessageEmbed) (int, bool) {
	if embed == nil || embed.Footer == nil {
		return 0, false
	}
	m := footerIDRe.FindStringSubmatch(strings.TrimSpace(embed.Footer.Text))
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
