package models

import "github.com/julianstephens/wird/internal/constants"

// DefaultSettings returns the built-in settings baseline.
func DefaultSettings() Settings {
	return Settings{
		Enabled:                       constants.DefaultEnabled,
		PrayerReminders:               constants.DefaultPrayerReminders,
		PrayerReminderMinutes:         constants.DefaultPrayerReminderMinutes,
		DailyHadith:                   constants.DefaultDailyHadith,
		DailyHadithTime:               constants.DefaultDailyHadithTime,
		DailyHadithRepeat:             constants.DefaultDailyHadithRepeat,
		DailyHadithRepeatInterval:     constants.DefaultDailyHadithRepeatInterval,
		DailyQuranVerse:               constants.DefaultDailyQuranVerse,
		DailyQuranVerseTime:           constants.DefaultDailyQuranVerseTime,
		DailyQuranVerseRepeat:         constants.DefaultDailyQuranVerseRepeat,
		DailyQuranVerseRepeatInterval: constants.DefaultDailyQuranVerseRepeatInterval,
		DhikrReminders:                constants.DefaultDhikrReminders,
		DhikrMorningTime:              constants.DefaultDhikrMorningTime,
		FridayQuran:                   constants.DefaultFridayQuran,
		FridayQuranTime:               constants.DefaultFridayQuranTime,
		HourlyReminders:               constants.DefaultHourlyReminders,
		HourlyReminderInterval:        constants.DefaultHourlyReminderInterval,
		BrowserNotifications:          constants.DefaultBrowserNotifications,
	}
}

// ApplyPatch returns settings with every non-nil patch field applied.
func ApplyPatch(settings Settings, patch SettingsPatch) Settings {
	if patch.Enabled != nil {
		settings.Enabled = *patch.Enabled
	}
	if patch.PrayerReminders != nil {
		settings.PrayerReminders = *patch.PrayerReminders
	}
	if patch.PrayerReminderMinutes != nil {
		settings.PrayerReminderMinutes = *patch.PrayerReminderMinutes
	}
	if patch.DailyHadith != nil {
		settings.DailyHadith = *patch.DailyHadith
	}
	if patch.DailyHadithTime != nil {
		settings.DailyHadithTime = *patch.DailyHadithTime
	}
	if patch.DailyHadithRepeat != nil {
		settings.DailyHadithRepeat = *patch.DailyHadithRepeat
	}
	if patch.DailyHadithRepeatInterval != nil {
		settings.DailyHadithRepeatInterval = *patch.DailyHadithRepeatInterval
	}
	if patch.DailyQuranVerse != nil {
		settings.DailyQuranVerse = *patch.DailyQuranVerse
	}
	if patch.DailyQuranVerseTime != nil {
		settings.DailyQuranVerseTime = *patch.DailyQuranVerseTime
	}
	if patch.DailyQuranVerseRepeat != nil {
		settings.DailyQuranVerseRepeat = *patch.DailyQuranVerseRepeat
	}
	if patch.DailyQuranVerseRepeatInterval != nil {
		settings.DailyQuranVerseRepeatInterval = *patch.DailyQuranVerseRepeatInterval
	}
	if patch.DhikrReminders != nil {
		settings.DhikrReminders = *patch.DhikrReminders
	}
	if patch.DhikrMorningTime != nil {
		settings.DhikrMorningTime = *patch.DhikrMorningTime
	}
	if patch.FridayQuran != nil {
		settings.FridayQuran = *patch.FridayQuran
	}
	if patch.FridayQuranTime != nil {
		settings.FridayQuranTime = *patch.FridayQuranTime
	}
	if patch.HourlyReminders != nil {
		settings.HourlyReminders = *patch.HourlyReminders
	}
	if patch.HourlyReminderInterval != nil {
		settings.HourlyReminderInterval = *patch.HourlyReminderInterval
	}
	if patch.BrowserNotifications != nil {
		settings.BrowserNotifications = *patch.BrowserNotifications
	}
	return settings
}

// CriticalChange reports whether moving from a to b invalidates the planned
// reminders. Only BrowserNotifications is excluded.
func CriticalChange(a, b Settings) bool {
	a.BrowserNotifications = b.BrowserNotifications
	return a != b
}

// ChangedFields lists the persisted keys whose values differ between a and b.
func ChangedFields(a, b Settings) []string {
	fields := []struct {
		key     string
		changed bool
	}{
		{constants.SettingEnabled, a.Enabled != b.Enabled},
		{constants.SettingPrayerReminders, a.PrayerReminders != b.PrayerReminders},
		{constants.SettingPrayerReminderMinutes, a.PrayerReminderMinutes != b.PrayerReminderMinutes},
		{constants.SettingDailyHadith, a.DailyHadith != b.DailyHadith},
		{constants.SettingDailyHadithTime, a.DailyHadithTime != b.DailyHadithTime},
		{constants.SettingDailyHadithRepeat, a.DailyHadithRepeat != b.DailyHadithRepeat},
		{constants.SettingDailyHadithRepeatInterval, a.DailyHadithRepeatInterval != b.DailyHadithRepeatInterval},
		{constants.SettingDailyQuranVerse, a.DailyQuranVerse != b.DailyQuranVerse},
		{constants.SettingDailyQuranVerseTime, a.DailyQuranVerseTime != b.DailyQuranVerseTime},
		{constants.SettingDailyQuranVerseRepeat, a.DailyQuranVerseRepeat != b.DailyQuranVerseRepeat},
		{constants.SettingDailyQuranVerseRepeatInterval, a.DailyQuranVerseRepeatInterval != b.DailyQuranVerseRepeatInterval},
		{constants.SettingDhikrReminders, a.DhikrReminders != b.DhikrReminders},
		{constants.SettingDhikrMorningTime, a.DhikrMorningTime != b.DhikrMorningTime},
		{constants.SettingFridayQuran, a.FridayQuran != b.FridayQuran},
		{constants.SettingFridayQuranTime, a.FridayQuranTime != b.FridayQuranTime},
		{constants.SettingHourlyReminders, a.HourlyReminders != b.HourlyReminders},
		{constants.SettingHourlyReminderInterval, a.HourlyReminderInterval != b.HourlyReminderInterval},
		{constants.SettingBrowserNotifications, a.BrowserNotifications != b.BrowserNotifications},
	}

	var changed []string
	for _, f := range fields {
		if f.changed {
			changed = append(changed, f.key)
		}
	}
	return changed
}
