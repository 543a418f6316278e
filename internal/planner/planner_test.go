package planner

import (
	"reflect"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/wird/internal/content"
	"github.com/julianstephens/wird/internal/models"
)

// 2025-03-05 is a Wednesday, 2025-03-07 a Friday
func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

// onlySettings enables just the listed categories
func onlySettings(categories ...models.Category) models.Settings {
	s := models.DefaultSettings()
	s.PrayerReminders = false
	s.DailyHadith = false
	s.DailyQuranVerse = false
	s.DhikrReminders = false
	s.FridayQuran = false
	s.HourlyReminders = false

	for _, c := range categories {
		switch c {
		case models.CategoryPrayer:
			s.PrayerReminders = true
		case models.CategoryHadith:
			s.DailyHadith = true
		case models.CategoryQuranVerse:
			s.DailyQuranVerse = true
		case models.CategoryDhikr:
			s.DhikrReminders = true
		case models.CategoryFriday:
			s.FridayQuran = true
		case models.CategoryHourly:
			s.HourlyReminders = true
		}
	}
	return s
}

func fireTimes(reminders []models.Reminder) []time.Time {
	out := make([]time.Time, len(reminders))
	for i, r := range reminders {
		out[i] = r.FireTime
	}
	return out
}

func TestPlan_HadithAfterStart(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryHadith)
	s.DailyHadithTime = "08:00"
	s.DailyHadithRepeatInterval = 180

	got := fireTimes(p.Plan(s, at(5, 8, 5), nil))
	want := []time.Time{at(5, 11, 0), at(5, 14, 0), at(5, 17, 0), at(5, 20, 0), at(5, 23, 0)}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("hadith instants = %v\nwant %v", got, want)
	}
}

func TestPlan_FirstInstantIsStartWhenAhead(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryQuranVerse)
	s.DailyQuranVerseTime = "09:30"
	s.DailyQuranVerseRepeatInterval = 240

	got := fireTimes(p.Plan(s, at(5, 7, 0), nil))
	// 960 / 240 caps the day at four instants
	want := []time.Time{at(5, 9, 30), at(5, 13, 30), at(5, 17, 30), at(5, 21, 30)}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("verse instants = %v\nwant %v", got, want)
	}
}

func TestInstants_ShortIntervalsStartAtNextBoundary(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		start    string
		interval int
		want     time.Time
	}{
		{"before start", time.Date(2025, 3, 5, 7, 33, 20, 0, time.UTC), "08:00", 10, at(5, 7, 40)},
		{"start far ahead", at(5, 10, 7), "20:00", 15, at(5, 10, 15)},
		{"on boundary", at(5, 9, 0), "08:00", 5, at(5, 9, 0)},
		{"after start", at(5, 9, 1), "08:00", 15, at(5, 9, 15)},
		{"one minute", time.Date(2025, 3, 5, 9, 0, 30, 0, time.UTC), "12:00", 1, at(5, 9, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Instants(tt.now, tt.start, tt.interval, true)
			if len(got) == 0 {
				t.Fatal("expected instants")
			}
			if !got[0].Equal(tt.want) {
				t.Errorf("first instant = %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestInstants_SpacingAndBounds(t *testing.T) {
	intervals := []int{1, 5, 15, 16, 45, 60, 90, 180, 1000, 1440}
	nows := []time.Time{at(5, 0, 0), at(5, 6, 59), at(5, 12, 1), at(5, 23, 58)}

	for _, interval := range intervals {
		for _, now := range nows {
			got := Instants(now, "08:00", interval, true)
			end := time.Date(2025, 3, 5, 23, 59, 59, 999000000, time.UTC)

			if len(got) > RepeatCap(interval) {
				t.Errorf("interval %d at %v: %d instants exceeds cap %d", interval, now, len(got), RepeatCap(interval))
			}
			for i, inst := range got {
				if inst.Before(now) || inst.After(end) {
					t.Errorf("interval %d at %v: instant %v outside [now, end of day]", interval, now, inst)
				}
				if i > 0 && inst.Sub(got[i-1]) != time.Duration(interval)*time.Minute {
					t.Errorf("interval %d at %v: spacing %v", interval, now, inst.Sub(got[i-1]))
				}
			}
		}
	}
}

func TestRepeatCap(t *testing.T) {
	tests := []struct {
		interval int
		want     int
	}{
		{0, 960},
		{1, 960},
		{15, 64},
		{180, 5},
		{960, 1},
		{2000, 1},
	}

	for _, tt := range tests {
		if got := RepeatCap(tt.interval); got != tt.want {
			t.Errorf("RepeatCap(%d) = %d, want %d", tt.interval, got, tt.want)
		}
	}
}

func TestInstants_NoRepeat(t *testing.T) {
	if got := Instants(at(5, 7, 0), "08:00", 180, false); len(got) != 1 || !got[0].Equal(at(5, 8, 0)) {
		t.Errorf("ahead of start: got %v, want [08:00]", got)
	}
	if got := Instants(at(5, 9, 0), "08:00", 180, false); len(got) != 0 {
		t.Errorf("after start: got %v, want none", got)
	}
	if got := Instants(at(5, 9, 0), "bogus", 180, true); got != nil {
		t.Errorf("invalid start: got %v, want nil", got)
	}
}

func TestHourlyInstants(t *testing.T) {
	got := HourlyInstants(at(5, 13, 10), 120)
	want := []time.Time{at(5, 14, 0), at(5, 16, 0), at(5, 18, 0), at(5, 20, 0), at(5, 22, 0)}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("hourly instants = %v\nwant %v", got, want)
	}
}

func TestPlan_Dhikr(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryDhikr)
	s.DhikrMorningTime = "06:00"

	tests := []struct {
		name string
		now  time.Time
		want []time.Time
	}{
		{"before morning", at(5, 5, 0), []time.Time{at(5, 6, 0), at(5, 17, 0)}},
		{"midday", at(5, 12, 0), []time.Time{at(5, 17, 0), at(6, 6, 0)}},
		{"night", at(5, 22, 0), []time.Time{at(6, 6, 0), at(6, 17, 0)}},
		{"exactly evening", at(5, 17, 0), []time.Time{at(6, 6, 0), at(6, 17, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders := p.Plan(s, tt.now, nil)
			if len(reminders) != 2 {
				t.Fatalf("dhikr yielded %d reminders, want 2", len(reminders))
			}
			if got := fireTimes(reminders); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dhikr instants = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlan_Friday(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryFriday)
	s.FridayQuranTime = "08:00"

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"friday before", at(7, 7, 0), 1},
		{"friday after", at(7, 9, 0), 0},
		{"friday exactly", at(7, 8, 0), 0},
		{"wednesday", at(5, 7, 0), 0},
		{"thursday night", at(6, 23, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders := p.Plan(s, tt.now, nil)
			if len(reminders) != tt.want {
				t.Fatalf("friday yielded %d reminders, want %d", len(reminders), tt.want)
			}
			if tt.want == 1 {
				r := reminders[0]
				if !r.FireTime.Equal(at(7, 8, 0)) {
					t.Errorf("fire time = %v, want 08:00", r.FireTime)
				}
				payload, ok := r.Payload.(models.FridayPayload)
				if !ok || len(payload.Ayahs) == 0 {
					t.Errorf("payload = %#v, want al-Kahf ayahs", r.Payload)
				}
			}
		})
	}
}

func TestPlan_Prayer(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryPrayer)
	s.PrayerReminderMinutes = 10

	times := []models.PrayerTime{
		{Name: "fajr", Time: "05:12"},
		{Name: "sunrise", Time: "06:40"},
		{Name: "dhuhr", Time: "12:30"},
		{Name: "asr", Time: "15:45"},
	}
	now := at(5, 12, 25)

	reminders := p.Plan(s, now, times)
	if len(reminders) != 3 {
		t.Fatalf("got %d prayer reminders, want 3 (sunrise excluded)", len(reminders))
	}

	want := map[string]time.Time{
		"asr":   at(5, 15, 35),
		"fajr":  at(6, 5, 2),
		"dhuhr": at(6, 12, 20),
	}
	for _, r := range reminders {
		payload := r.Payload.(models.PrayerPayload)
		if payload.Name == "sunrise" {
			t.Error("sunrise must not produce a reminder")
		}
		if !r.FireTime.Equal(want[payload.Name]) {
			t.Errorf("%s fires at %v, want %v", payload.Name, r.FireTime, want[payload.Name])
		}
		if !payload.PrayerTime.Equal(r.FireTime.Add(10 * time.Minute)) {
			t.Errorf("%s prayer time %v does not match offset", payload.Name, payload.PrayerTime)
		}
	}
}

func TestPlan_PrayerInvalidTimeDegrades(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryPrayer)
	s.PrayerReminderMinutes = 10
	now := at(5, 12, 0)

	reminders := p.Plan(s, now, []models.PrayerTime{{Name: "maghrib", Time: "soon"}})
	if len(reminders) != 1 {
		t.Fatalf("got %d reminders, want 1", len(reminders))
	}
	if want := now.Add(50 * time.Minute); !reminders[0].FireTime.Equal(want) {
		t.Errorf("fire time = %v, want %v", reminders[0].FireTime, want)
	}
}

func TestPlan_NoPrayerTimes(t *testing.T) {
	p := New(nil)
	if got := p.Plan(onlySettings(models.CategoryPrayer), at(5, 12, 0), nil); len(got) != 0 {
		t.Errorf("got %d reminders without prayer times, want 0", len(got))
	}
}

func TestPlan_Disabled(t *testing.T) {
	s := models.DefaultSettings()
	s.Enabled = false

	if got := New(nil).Plan(s, at(5, 7, 0), nil); got != nil {
		t.Errorf("disabled settings planned %d reminders", len(got))
	}
}

func TestPlan_IDStability(t *testing.T) {
	p := New(nil)
	s := models.DefaultSettings()
	s.HourlyReminders = true
	times := []models.PrayerTime{{Name: "dhuhr", Time: "12:30"}, {Name: "isha", Time: "19:50"}}
	now := at(7, 7, 0)

	first := p.Plan(s, now, times)
	second := p.Plan(s, now, times)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("planning the same inputs twice produced different reminders")
	}

	seen := make(map[string]bool)
	for _, r := range first {
		if seen[r.ID] {
			t.Errorf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}
	if !seen["hadith-2025-03-07-2"] || !seen["friday-2025-03-07-0"] {
		t.Errorf("expected deterministic ids, got %v", seen)
	}
}

func TestSlot(t *testing.T) {
	tests := []struct {
		at    time.Time
		width int
		want  int
	}{
		{at(5, 8, 0), 180, 2},
		{at(5, 11, 0), 180, 3},
		{at(5, 9, 0), 10, 54},
		{at(5, 23, 59), 1, 1439},
		{at(5, 14, 0), 0, 0},
	}

	for _, tt := range tests {
		if got := Slot(tt.at, tt.width); got != tt.want {
			t.Errorf("Slot(%v, %d) = %d, want %d", tt.at, tt.width, got, tt.want)
		}
	}
}

func TestPlan_IDsIndependentOfPlanningTime(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryHadith)

	early := p.Plan(s, at(5, 7, 0), nil)
	late := p.Plan(s, at(5, 12, 0), nil)

	byTime := make(map[time.Time]string)
	for _, r := range early {
		byTime[r.FireTime] = r.ID
	}
	for _, r := range late {
		if id, ok := byTime[r.FireTime]; ok && id != r.ID {
			t.Errorf("%v planned as %s and %s", r.FireTime, id, r.ID)
		}
	}
}

func TestPlan_SortedAndBounded(t *testing.T) {
	s := models.DefaultSettings()
	s.HourlyReminders = true
	s.HourlyReminderInterval = 7

	reminders := New(nil).Plan(s, at(7, 6, 30), []models.PrayerTime{{Name: "asr", Time: "15:45"}})
	for i, r := range reminders {
		if i > 0 && r.FireTime.Before(reminders[i-1].FireTime) {
			t.Fatalf("reminders not sorted at %d", i)
		}
		if utf8.RuneCountInString(r.Message) > 200 {
			t.Errorf("%s message has %d runes", r.ID, utf8.RuneCountInString(r.Message))
		}
	}
}

func TestPlan_ContentFollowsFireTime(t *testing.T) {
	p := New(nil)
	s := onlySettings(models.CategoryHadith)

	reminders := p.Plan(s, at(5, 8, 5), nil)
	for _, r := range reminders {
		want, _ := content.Builtin().HadithAt(r.FireTime)
		payload, ok := r.Payload.(models.HadithPayload)
		if !ok {
			t.Fatalf("payload = %#v, want HadithPayload", r.Payload)
		}
		if payload.Hadith != want {
			t.Errorf("%s: hadith %d, want %d", r.ID, payload.Hadith.ID, want.ID)
		}
	}
}

func TestPlan_EmptyContentFallsBack(t *testing.T) {
	p := New(&content.Collection{})
	reminders := p.Plan(onlySettings(models.CategoryHadith), at(5, 8, 5), nil)

	if len(reminders) == 0 {
		t.Fatal("expected reminders with an empty content collection")
	}
	if reminders[0].Payload != nil || reminders[0].Message == "" {
		t.Errorf("unexpected fallback reminder: %+v", reminders[0])
	}
}
