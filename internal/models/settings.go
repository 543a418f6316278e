package models

// Settings represents the user's reminder scheduling preferences
type Settings struct {
	Enabled bool `json:"enabled"` // master switch, false stops the scheduler loop

	PrayerReminders       bool `json:"prayerReminders"`
	PrayerReminderMinutes int  `json:"prayerReminderMinutes" validate:"min=0"` // offset before each prayer

	DailyHadith               bool   `json:"dailyHadith"`
	DailyHadithTime           string `json:"dailyHadithTime" validate:"hhmm"`
	DailyHadithRepeat         bool   `json:"dailyHadithRepeat"`
	DailyHadithRepeatInterval int    `json:"dailyHadithRepeatInterval" validate:"min=1"` // minutes

	DailyQuranVerse               bool   `json:"dailyQuranVerse"`
	DailyQuranVerseTime           string `json:"dailyQuranVerseTime" validate:"hhmm"`
	DailyQuranVerseRepeat         bool   `json:"dailyQuranVerseRepeat"`
	DailyQuranVerseRepeatInterval int    `json:"dailyQuranVerseRepeatInterval" validate:"min=1"` // minutes

	DhikrReminders   bool   `json:"dhikrReminders"`
	DhikrMorningTime string `json:"dhikrMorningTime" validate:"hhmm"` // evening is fixed at 17:00

	FridayQuran     bool   `json:"fridayQuran"`
	FridayQuranTime string `json:"fridayQuranTime" validate:"hhmm"`

	HourlyReminders        bool `json:"hourlyReminders"`
	HourlyReminderInterval int  `json:"hourlyReminderInterval" validate:"min=1"` // minutes

	BrowserNotifications bool `json:"browserNotifications"` // also raise a native notification
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	Enabled *bool `json:"enabled,omitempty"`

	PrayerReminders       *bool `json:"prayerReminders,omitempty"`
	PrayerReminderMinutes *int  `json:"prayerReminderMinutes,omitempty"`

	DailyHadith               *bool   `json:"dailyHadith,omitempty"`
	DailyHadithTime           *string `json:"dailyHadithTime,omitempty"`
	DailyHadithRepeat         *bool   `json:"dailyHadithRepeat,omitempty"`
	DailyHadithRepeatInterval *int    `json:"dailyHadithRepeatInterval,omitempty"`

	DailyQuranVerse               *bool   `json:"dailyQuranVerse,omitempty"`
	DailyQuranVerseTime           *string `json:"dailyQuranVerseTime,omitempty"`
	DailyQuranVerseRepeat         *bool   `json:"dailyQuranVerseRepeat,omitempty"`
	DailyQuranVerseRepeatInterval *int    `json:"dailyQuranVerseRepeatInterval,omitempty"`

	DhikrReminders   *bool   `json:"dhikrReminders,omitempty"`
	DhikrMorningTime *string `json:"dhikrMorningTime,omitempty"`

	FridayQuran     *bool   `json:"fridayQuran,omitempty"`
	FridayQuranTime *string `json:"fridayQuranTime,omitempty"`

	HourlyReminders        *bool `json:"hourlyReminders,omitempty"`
	HourlyReminderInterval *int  `json:"hourlyReminderInterval,omitempty"`

	BrowserNotifications *bool `json:"browserNotifications,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p SettingsPatch) IsEmpty() bool {
	return p == SettingsPatch{}
}
