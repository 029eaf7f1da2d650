// Package report provides the core logic for handling member reports:
// intake validation, status transitions and listing filters.
package report

import (
	"errors"
	"time"

	"reportbot/backend/internal/models"
	"reportbot/backend/internal/storage"
)

// Intake rejections. These are user-input errors, not failures: no record
// is created and the caller renders them inline.
var (
	ErrSelfReport = errors.New("members cannot report themselves")
	ErrBotReport  = errors.New("the bot cannot be reported")
)

// Service handles the business logic for reports.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new report service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// File validates and records a new report. The returned record carries the
// ID assigned by the store.
func (s *Service) File(guildID, channelID, reporterID, targetID, botID, reason string) (*models.Report, error) {
	if targetID == reporterID {
		return nil, ErrSelfReport
	}
	if targetID == botID {
		return nil, ErrBotReport
	}

	r := &models.Report{
		ReportedUser: targetID,
		ReportedBy:   reporterID,
		Reason:       reason,
		Timestamp:    time.Now().UTC(),
		Status:       models.StatusPending,
		ChannelID:    channelID,
		GuildID:      guildID,
	}
	if _, err := s.Storage.Append(guildID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(guildID string, id int) (*models.Report, error) {
	return s.Storage.GetByID(guildID, id)
}

func (s *Service) Resolve(guildID string, id int) error {
	return s.Storage.UpdateStatus(guildID, id, models.StatusResolved)
}

func (s *Service) Dismiss(guildID string, id int) error {
	return s.Storage.UpdateStatus(guildID, id, models.StatusDismissed)
}

func (s *Service) All(guildID string) ([]*models.Report, error) {
	return s.Storage.All(guildID)
}

// Recent returns up to limit reports matching the status filter, most
// recent first.
func (s *Service) Recent(guildID, status string, limit int) ([]*models.Report, error) {
	matches, err := s.Storage.ListByStatus(guildID, status)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Report, 0, limit)
	for i := len(matches) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, matches[i])
	}
	return out, nil
}
