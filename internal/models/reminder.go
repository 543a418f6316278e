package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/wird/internal/constants"
)

// Category identifies a reminder kind and its recurrence policy
type Category string

const (
	CategoryPrayer     Category = "prayer"
	CategoryHadith     Category = "hadith"
	CategoryQuranVerse Category = "quran-verse"
	CategoryDhikr      Category = "dhikr"
	CategoryFriday     Category = "friday"
	CategoryHourly     Category = "hourly"
)

type Reminder struct {
	ID       string    `json:"id"`
	Category Category  `json:"category"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	FireTime time.Time `json:"fire_time"`
	Payload  any       `json:"payload,omitempty"`
	Shown    bool      `json:"shown"`
}

// ReminderID builds the idempotent planning key for a reminder.
func ReminderID(category Category, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%d", category, day.Format(constants.DateFormat), seq)
}

// IsDue reports whether the reminder should be delivered at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Shown && !r.FireTime.After(now)
}

// IsActive reports whether the reminder is still waiting for a future instant.
func (r *Reminder) IsActive(now time.Time) bool {
	return !r.Shown && r.FireTime.After(now)
}

// PrayerPayload is attached to prayer reminders
type PrayerPayload struct {
	Name       string    `json:"name"`
	Index      int       `json:"index"`
	PrayerTime time.Time `json:"prayer_time"`
	Offset     int       `json:"offset_min"`
}

type HadithPayload struct {
	Hadith Hadith `json:"hadith"`
}

type VersePayload struct {
	Verse Verse `json:"verse"`
}

// DhikrPayload carries the period of the day, "morning" or "evening"
type DhikrPayload struct {
	Period string `json:"period"`
}

// FridayPayload carries the opening ayahs of Surat al-Kahf
type FridayPayload struct {
	Surah string  `json:"surah"`
	Ayahs []Verse `json:"ayahs"`
}

type HourlyPayload struct {
	Dhikr Dhikr `json:"dhikr"`
}
