// Package planner turns reminder settings into the concrete fire instants for
// the rest of the day. Planning is deterministic: the same settings, instant
// and prayer times always produce the same reminders with the same ids.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/content"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
)

const (
	periodMorning = "morning"
	periodEvening = "evening"
)

type Planner struct {
	content content.Provider
}

// New returns a planner drawing content from provider, or from the builtin
// collection when provider is nil.
func New(provider content.Provider) *Planner {
	if provider == nil {
		provider = content.Builtin()
	}
	return &Planner{content: provider}
}

// Plan computes every reminder still ahead of now for the enabled categories,
// sorted by fire time. prayerTimes may be nil.
func (p *Planner) Plan(s models.Settings, now time.Time, prayerTimes []models.PrayerTime) []models.Reminder {
	if !s.Enabled {
		return nil
	}

	var reminders []models.Reminder
	if s.PrayerReminders {
		reminders = append(reminders, p.prayers(s, now, prayerTimes)...)
	}
	if s.DailyHadith {
		instants := Instants(now, s.DailyHadithTime, s.DailyHadithRepeatInterval, s.DailyHadithRepeat)
		reminders = append(reminders, p.hadith(instants, slotWidth(s.DailyHadithRepeat, s.DailyHadithRepeatInterval))...)
	}
	if s.DailyQuranVerse {
		instants := Instants(now, s.DailyQuranVerseTime, s.DailyQuranVerseRepeatInterval, s.DailyQuranVerseRepeat)
		reminders = append(reminders, p.verses(instants, slotWidth(s.DailyQuranVerseRepeat, s.DailyQuranVerseRepeatInterval))...)
	}
	if s.DhikrReminders {
		reminders = append(reminders, p.dhikr(s, now)...)
	}
	if s.FridayQuran {
		reminders = append(reminders, p.friday(s, now)...)
	}
	if s.HourlyReminders {
		reminders = append(reminders, p.hourly(HourlyInstants(now, s.HourlyReminderInterval), s.HourlyReminderInterval)...)
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].FireTime.Equal(reminders[j].FireTime) {
			return reminders[i].ID < reminders[j].ID
		}
		return reminders[i].FireTime.Before(reminders[j].FireTime)
	})
	return reminders
}

// Instants returns the fire instants of an interval category for the rest of
// now's day. The grid is anchored on start. When repeat is false only start
// itself is returned, and only while it is still ahead.
func Instants(now time.Time, start string, interval int, repeat bool) []time.Time {
	startAt, err := clockAt(now, start)
	if err != nil {
		logger.Warn("Skipping interval reminders with invalid start time", "start", start, "error", err)
		return nil
	}

	if !repeat {
		if startAt.After(now) {
			return []time.Time{startAt}
		}
		return nil
	}

	return grid(now, startAt, interval)
}

// HourlyInstants returns the interval grid anchored on midnight.
func HourlyInstants(now time.Time, interval int) []time.Time {
	return grid(now, startOfDay(now), interval)
}

func grid(now, anchor time.Time, interval int) []time.Time {
	if interval < 1 {
		interval = 1
	}
	step := time.Duration(interval) * time.Minute

	var first time.Time
	if anchor.After(now) && interval > constants.ImmediateIntervalMaxMin {
		first = anchor
	} else {
		first = nextBoundary(now, anchor, step)
	}

	limit := RepeatCap(interval)
	end := endOfDay(now)

	var instants []time.Time
	for t := first; !t.After(end) && len(instants) < limit; t = t.Add(step) {
		instants = append(instants, t)
	}
	return instants
}

// RepeatCap bounds the instants generated per category per day.
func RepeatCap(interval int) int {
	if interval < 1 {
		interval = 1
	}
	n := constants.ProductiveWindowMin / interval
	if n < 1 {
		n = 1
	}
	if n > constants.MaxRepeatsPerDay {
		n = constants.MaxRepeatsPerDay
	}
	return n
}

// Slot numbers an interval instant within its day: minutes since midnight
// divided by the interval. Instants of one grid never share a slot, and the
// slot does not depend on when the grid was planned. A zero width numbers
// everything 0.
func Slot(at time.Time, width int) int {
	if width <= 0 {
		return 0
	}
	return (at.Hour()*60 + at.Minute()) / width
}

func slotWidth(repeat bool, interval int) int {
	if !repeat {
		return 0
	}
	if interval < 1 {
		return 1
	}
	return interval
}

// nextBoundary returns the first anchor + k*step at or after now, for any
// integer k.
func nextBoundary(now, anchor time.Time, step time.Duration) time.Time {
	diff := now.Sub(anchor)
	k := diff / step
	if diff > 0 && diff%step != 0 {
		k++
	}
	return anchor.Add(k * step)
}

func (p *Planner) prayers(s models.Settings, now time.Time, prayerTimes []models.PrayerTime) []models.Reminder {
	offset := time.Duration(s.PrayerReminderMinutes) * time.Minute

	var reminders []models.Reminder
	for i, pt := range prayerTimes {
		if pt.IsSunrise() {
			continue
		}

		prayerAt, err := clockAt(now, pt.Time)
		if err != nil {
			logger.Warn("Invalid prayer time, reminding in an hour", "prayer", pt.Name, "time", pt.Time)
			prayerAt = now.Add(time.Hour)
		}

		fire := prayerAt.Add(-offset)
		if !fire.After(now) {
			prayerAt = prayerAt.AddDate(0, 0, 1)
			fire = prayerAt.Add(-offset)
		}

		title := fmt.Sprintf("%s in %d minutes", pt.DisplayName(), s.PrayerReminderMinutes)
		if s.PrayerReminderMinutes == 0 {
			title = fmt.Sprintf("Time for %s", pt.DisplayName())
		}

		reminders = append(reminders, models.Reminder{
			ID:       models.ReminderID(models.CategoryPrayer, fire, i),
			Category: models.CategoryPrayer,
			Title:    title,
			Message:  fmt.Sprintf("%s prayer at %s", pt.DisplayName(), prayerAt.Format(constants.TimeFormat)),
			FireTime: fire,
			Payload: models.PrayerPayload{
				Name:       pt.Name,
				Index:      i,
				PrayerTime: prayerAt,
				Offset:     s.PrayerReminderMinutes,
			},
		})
	}
	return reminders
}

func (p *Planner) hadith(instants []time.Time, width int) []models.Reminder {
	reminders := make([]models.Reminder, 0, len(instants))
	for _, at := range instants {
		r := models.Reminder{
			ID:       models.ReminderID(models.CategoryHadith, at, Slot(at, width)),
			Category: models.CategoryHadith,
			Title:    "Daily Hadith",
			Message:  "Take a moment to reflect on a hadith.",
			FireTime: at,
		}
		if h, ok := p.content.HadithAt(at); ok {
			r.Message = content.Excerpt(h.Translation, constants.MessageMaxRunes)
			r.Payload = models.HadithPayload{Hadith: h}
		}
		reminders = append(reminders, r)
	}
	return reminders
}

func (p *Planner) verses(instants []time.Time, width int) []models.Reminder {
	reminders := make([]models.Reminder, 0, len(instants))
	for _, at := range instants {
		r := models.Reminder{
			ID:       models.ReminderID(models.CategoryQuranVerse, at, Slot(at, width)),
			Category: models.CategoryQuranVerse,
			Title:    "Quran Verse",
			Message:  "Take a moment to read from the Quran.",
			FireTime: at,
		}
		if v, ok := p.content.VerseAt(at); ok {
			r.Message = fmt.Sprintf("%s (%s)", content.Excerpt(v.Translation, constants.MessageMaxRunes), v.Reference())
			r.Payload = models.VersePayload{Verse: v}
		}
		reminders = append(reminders, r)
	}
	return reminders
}

func (p *Planner) dhikr(s models.Settings, now time.Time) []models.Reminder {
	periods := []struct {
		name  string
		title string
		at    string
	}{
		{periodMorning, "Morning Adhkar", s.DhikrMorningTime},
		{periodEvening, "Evening Adhkar", constants.EveningDhikrTime},
	}

	var reminders []models.Reminder
	for seq, period := range periods {
		fire, err := clockAt(now, period.at)
		if err != nil {
			logger.Warn("Skipping dhikr reminder with invalid time", "period", period.name, "time", period.at)
			continue
		}
		if !fire.After(now) {
			fire = fire.AddDate(0, 0, 1)
		}

		reminders = append(reminders, models.Reminder{
			ID:       models.ReminderID(models.CategoryDhikr, fire, seq),
			Category: models.CategoryDhikr,
			Title:    period.title,
			Message:  fmt.Sprintf("Time for your %s remembrance.", period.name),
			FireTime: fire,
			Payload:  models.DhikrPayload{Period: period.name},
		})
	}
	return reminders
}

func (p *Planner) friday(s models.Settings, now time.Time) []models.Reminder {
	if now.Weekday() != time.Friday {
		return nil
	}

	fire, err := clockAt(now, s.FridayQuranTime)
	if err != nil {
		logger.Warn("Skipping Friday reminder with invalid time", "time", s.FridayQuranTime)
		return nil
	}
	if !fire.After(now) {
		return nil
	}

	return []models.Reminder{{
		ID:       models.ReminderID(models.CategoryFriday, fire, 0),
		Category: models.CategoryFriday,
		Title:    "Surat al-Kahf",
		Message:  "It is Friday. Remember to read Surat al-Kahf.",
		FireTime: fire,
		Payload: models.FridayPayload{
			Surah: "Al-Kahf",
			Ayahs: p.content.KahfAt(fire),
		},
	}}
}

func (p *Planner) hourly(instants []time.Time, interval int) []models.Reminder {
	width := slotWidth(true, interval)
	reminders := make([]models.Reminder, 0, len(instants))
	for _, at := range instants {
		r := models.Reminder{
			ID:       models.ReminderID(models.CategoryHourly, at, Slot(at, width)),
			Category: models.CategoryHourly,
			Title:    "Remembrance",
			Message:  "Pause for a moment of dhikr.",
			FireTime: at,
		}
		if d, ok := p.content.DhikrAt(at); ok {
			r.Message = content.Excerpt(fmt.Sprintf("%s: %s", d.Transliteration, d.Translation), constants.MessageMaxRunes)
			r.Payload = models.HourlyPayload{Dhikr: d}
		}
		reminders = append(reminders, r)
	}
	return reminders
}

// clockAt returns hhmm on now's calendar day in now's location.
func clockAt(now time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

func startOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func endOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
}
