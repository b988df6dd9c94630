package services

import (
	"context"
	"strings"
	"time"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/alarms"
)

type AlarmService interface {
	Set(ctx context.Context, userID, title string, at time.Time) (*models.Alarm, error)
	List(ctx context.Context, userID string) ([]models.Alarm, error)
	// DueBetween returns active alarms with from < DateTime <= to.
	DueBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Alarm, error)
}

type alarmService struct {
	repo alarms.Repository
	opts Options
}

func NewAlarmService(repo alarms.Repository, opts Options) AlarmService {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "alarms")
	return &alarmService{repo: repo, opts: opts}
}

func (s *alarmService) Set(ctx context.Context, userID, title string, at time.Time) (*models.Alarm, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrAlarmTitleRequired
	}
	now := s.opts.Now()
	if !at.After(now) {
		return nil, common.ErrAlarmInPast
	}

	alarm := models.Alarm{
		ID:        s.opts.NewID(),
		Title:     title,
		DateTime:  at,
		IsActive:  true,
		CreatedAt: now,
		UserID:    userID,
	}
	if err := s.repo.Append(ctx, userID, alarm); err != nil {
		return nil, err
	}

	s.opts.Logger.Debug(ctx, "alarm set", "user_id", userID, "alarm_id", alarm.ID, "at", at)
	return &alarm, nil
}

func (s *alarmService) List(ctx context.Context, userID string) ([]models.Alarm, error) {
	return s.repo.List(ctx, userID)
}

func (s *alarmService) DueBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Alarm, error) {
	all, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	var due []models.Alarm
	for _, a := range all {
		if a.IsActive && a.DateTime.After(from) && !a.DateTime.After(to) {
			due = append(due, a)
		}
	}
	return due, nil
}
