package constants

const (
	// Settings keys, as persisted in the settings blob
	SettingEnabled                       = "enabled"
	SettingPrayerReminders               = "prayerReminders"
	SettingPrayerReminderMinutes         = "prayerReminderMinutes"
	SettingDailyHadith                   = "dailyHadith"
	SettingDailyHadithTime               = "dailyHadithTime"
	SettingDailyHadithRepeat             = "dailyHadithRepeat"
	SettingDailyHadithRepeatInterval     = "dailyHadithRepeatInterval"
	SettingDailyQuranVerse               = "dailyQuranVerse"
	SettingDailyQuranVerseTime           = "dailyQuranVerseTime"
	SettingDailyQuranVerseRepeat         = "dailyQuranVerseRepeat"
	SettingDailyQuranVerseRepeatInterval = "dailyQuranVerseRepeatInterval"
	SettingDhikrReminders                = "dhikrReminders"
	SettingDhikrMorningTime              = "dhikrMorningTime"
	SettingFridayQuran                   = "fridayQuran"
	SettingFridayQuranTime               = "fridayQuranTime"
	SettingHourlyReminders               = "hourlyReminders"
	SettingHourlyReminderInterval        = "hourlyReminderInterval"
	SettingBrowserNotifications          = "browserNotifications"

	// Default Settings Values
	DefaultEnabled                       = true
	DefaultPrayerReminders               = true
	DefaultPrayerReminderMinutes         = 10
	DefaultDailyHadith                   = true
	DefaultDailyHadithTime               = "08:00"
	DefaultDailyHadithRepeat             = true
	DefaultDailyHadithRepeatInterval     = 180
	DefaultDailyQuranVerse               = true
	DefaultDailyQuranVerseTime           = "09:30"
	DefaultDailyQuranVerseRepeat         = true
	DefaultDailyQuranVerseRepeatInterval = 240
	DefaultDhikrReminders                = true
	DefaultDhikrMorningTime              = "06:00"
	DefaultFridayQuran                   = true
	DefaultFridayQuranTime               = "08:00"
	DefaultHourlyReminders               = false
	DefaultHourlyReminderInterval        = 120
	DefaultBrowserNotifications          = true
)
