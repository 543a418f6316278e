package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"github.com/julianstephens/wird/internal/models"
)

func sampleReminders() []models.Reminder {
	return []models.Reminder{
		{
			ID:       "dhikr-2025-03-05-1",
			Category: models.CategoryDhikr,
			Title:    "Evening Adhkar",
			Message:  "Time for your evening remembrance.",
			FireTime: time.Date(2025, 3, 5, 17, 0, 0, 0, time.UTC),
			Payload:  models.DhikrPayload{Period: "evening"},
		},
		{
			ID:       "quran-verse-2025-03-05-5",
			Category: models.CategoryQuranVerse,
			Title:    "Quran Verse",
			Message:  "Indeed, with hardship will be ease. (Ash-Sharh 94:6)",
			FireTime: time.Date(2025, 3, 5, 21, 30, 0, 0, time.UTC),
			Payload: models.VersePayload{Verse: models.Verse{
				Surah: 94, SurahName: "Ash-Sharh", Ayah: 6, Arabic: "إِنَّ مَعَ الْعُسْرِ يُسْرًا",
			}},
		},
	}
}

func TestBuild(t *testing.T) {
	stamp := time.Date(2025, 3, 5, 7, 0, 0, 0, time.UTC)
	cal := Build(sampleReminders(), stamp)

	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if uid, _ := first.Props.Text(ical.PropUID); uid != "dhikr-2025-03-05-1@wird" {
		t.Errorf("UID = %q", uid)
	}
	start, err := first.DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeStart failed: %v", err)
	}
	if !start.Equal(time.Date(2025, 3, 5, 17, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 17:00", start)
	}
	end, err := first.DateTimeEnd(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeEnd failed: %v", err)
	}
	if end.Sub(start) != eventDuration {
		t.Errorf("duration = %v, want %v", end.Sub(start), eventDuration)
	}

	desc, _ := events[1].Props.Text(ical.PropDescription)
	if !strings.Contains(desc, "إِنَّ مَعَ الْعُسْرِ يُسْرًا") {
		t.Errorf("description missing verse text: %q", desc)
	}
}

func TestEncode(t *testing.T) {
	stamp := time.Date(2025, 3, 5, 7, 0, 0, 0, time.UTC)

	out, err := Encode(sampleReminders(), stamp)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, want := range []string{"BEGIN:VCALENDAR", "PRODID:-//wird//Reminders//EN", "BEGIN:VEVENT", "SUMMARY:Evening Adhkar", "DTSTART:20250305T170000Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded calendar missing %q", want)
		}
	}

	again, _ := Encode(sampleReminders(), stamp)
	if again != out {
		t.Error("encoding the same plan twice should be identical")
	}

	// Round-trips through the decoder
	if _, err := ical.NewDecoder(strings.NewReader(out)).Decode(); err != nil {
		t.Errorf("encoded calendar does not decode: %v", err)
	}
}

func TestEncode_EmptyPlan(t *testing.T) {
	_, err := Encode(nil, time.Now())
	if err == nil {
		return
	}
	// go-ical rejects calendars without components; callers report that
	if !strings.Contains(err.Error(), "encode") {
		t.Errorf("unexpected error: %v", err)
	}
}
