package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

// parseAlarmTime accepts "2006-01-02 15:04" in local time or RFC 3339.
func parseAlarmTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid alarm time %q, use YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

// SetAlarm schedules a reminder; missing title or time are prompted for.
func (a *App) SetAlarm(ctx context.Context, title, at string) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	if title == "" {
		if title, err = getSimpleText(a.reader, "Alarm title", a.out); err != nil {
			return err
		}
	}
	if at == "" {
		if at, err = getSimpleText(a.reader, "When (YYYY-MM-DD HH:MM)", a.out); err != nil {
			return err
		}
	}
	when, err := parseAlarmTime(at)
	if err != nil {
		return err
	}

	alarm, err := a.alarmService.Set(ctx, p.ID, title, when)
	if err != nil {
		return err
	}
	a.success(fmt.Sprintf("Alarm %q set for %s", alarm.Title, alarm.DateTime.Local().Format(timeLayout)))
	return nil
}

func (a *App) ListAlarms(ctx context.Context) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	all, err := a.alarmService.List(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		a.println("No alarms")
		return nil
	}
	now := a.now()
	for _, al := range all {
		state := "upcoming"
		if !al.DateTime.After(now) {
			state = "past"
		}
		a.printf("%s  %s  %s\n", al.DateTime.Local().Format(timeLayout), al.Title, styles.Muted.Render(state))
	}
	return nil
}

// StartReminderWatcher announces alarms of the logged-in user as they fall
// due, checking every interval until ctx is cancelled.
func (a *App) StartReminderWatcher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := a.now()
	for {
		select {
		case <-ticker.C:
			now := a.now()
			a.checkReminders(ctx, last, now)
			last = now
		case <-ctx.Done():
			return nil
		}
	}
}

// checkReminders prints alarms due in (from, to].
func (a *App) checkReminders(ctx context.Context, from, to time.Time) []models.Alarm {
	p := a.currentProfile()
	if p == nil {
		return nil
	}
	due, err := a.alarmService.DueBetween(ctx, p.ID, from, to)
	if err != nil {
		a.log.Error(ctx, "error checking alarms", "error", err)
		return nil
	}
	for _, al := range due {
		a.warn("⏰ Reminder: " + al.Title)
	}
	return due
}
