package models

import (
	"slices"
	"testing"
	"time"
)

func TestApplyPatch(t *testing.T) {
	base := DefaultSettings()

	off := false
	zero := 0
	morning := "05:30"
	got := ApplyPatch(base, SettingsPatch{
		DailyHadith:           &off,
		PrayerReminderMinutes: &zero,
		DhikrMorningTime:      &morning,
	})

	if got.DailyHadith {
		t.Error("expected explicit false to apply")
	}
	if got.PrayerReminderMinutes != 0 {
		t.Errorf("expected explicit zero to apply, got %d", got.PrayerReminderMinutes)
	}
	if got.DhikrMorningTime != morning {
		t.Errorf("expected morning %s, got %s", morning, got.DhikrMorningTime)
	}

	// Everything not in the patch is preserved
	got.DailyHadith = base.DailyHadith
	got.PrayerReminderMinutes = base.PrayerReminderMinutes
	got.DhikrMorningTime = base.DhikrMorningTime
	if got != base {
		t.Errorf("unpatched fields changed:\n got %+v\nwant %+v", got, base)
	}
}

func TestCriticalChange(t *testing.T) {
	base := DefaultSettings()

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   bool
	}{
		{"unchanged", func(*Settings) {}, false},
		{"notifications only", func(s *Settings) { s.BrowserNotifications = !s.BrowserNotifications }, false},
		{"enabled", func(s *Settings) { s.Enabled = false }, true},
		{"interval", func(s *Settings) { s.HourlyReminderInterval = 30 }, true},
		{"time", func(s *Settings) { s.FridayQuranTime = "10:00" }, true},
		{"repeat flag", func(s *Settings) { s.DailyQuranVerseRepeat = false }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)
			if got := CriticalChange(base, next); got != tt.want {
				t.Errorf("CriticalChange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangedFields(t *testing.T) {
	base := DefaultSettings()

	if got := ChangedFields(base, base); len(got) != 0 {
		t.Errorf("expected no changes, got %v", got)
	}

	next := base
	next.DailyHadithTime = "07:00"
	next.BrowserNotifications = false
	next.HourlyReminders = true

	want := []string{"dailyHadithTime", "hourlyReminders", "browserNotifications"}
	if got := ChangedFields(base, next); !slices.Equal(got, want) {
		t.Errorf("ChangedFields = %v, want %v", got, want)
	}
}

func TestReminderID(t *testing.T) {
	day := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)
	if got := ReminderID(CategoryFriday, day, 0); got != "friday-2025-03-07-0" {
		t.Errorf("unexpected id %s", got)
	}
}

func TestReminderState(t *testing.T) {
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		reminder   Reminder
		wantDue    bool
		wantActive bool
	}{
		{"future", Reminder{FireTime: now.Add(time.Minute)}, false, true},
		{"exactly now", Reminder{FireTime: now}, true, false},
		{"past", Reminder{FireTime: now.Add(-time.Minute)}, true, false},
		{"shown", Reminder{FireTime: now.Add(-time.Minute), Shown: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reminder.IsDue(now); got != tt.wantDue {
				t.Errorf("IsDue = %v, want %v", got, tt.wantDue)
			}
			if got := tt.reminder.IsActive(now); got != tt.wantActive {
				t.Errorf("IsActive = %v, want %v", got, tt.wantActive)
			}
		})
	}
}

func TestPrayerTime(t *testing.T) {
	if !(PrayerTime{Name: "Sunrise"}).IsSunrise() {
		t.Error("expected sunrise to be recognized case-insensitively")
	}
	if got := (PrayerTime{Name: "fajr"}).DisplayName(); got != "Fajr" {
		t.Errorf("DisplayName = %s", got)
	}
	if got := (PrayerTime{}).DisplayName(); got != "Prayer" {
		t.Errorf("DisplayName of empty = %s", got)
	}
}
