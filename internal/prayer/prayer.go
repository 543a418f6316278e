// Package prayer supplies the day's prayer times to the planner. Times are
// read from a user-maintained timetable; nothing here computes them.
package prayer

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
)

// Provider returns the ordered prayer times for a day
type Provider interface {
	Times(day time.Time) ([]models.PrayerTime, error)
}

// Fixed returns the same prayer times every day
type Fixed []models.PrayerTime

func (f Fixed) Times(time.Time) ([]models.PrayerTime, error) {
	out := make([]models.PrayerTime, len(f))
	copy(out, f)
	return out, nil
}

// Timetable holds default daily times plus per-date overrides, keyed by
// YYYY-MM-DD. An override replaces only the prayers it names.
//
//	default:
//	  fajr: "05:12"
//	  dhuhr: "12:30"
//	dates:
//	  "2025-03-01":
//	    fajr: "05:10"
type Timetable struct {
	Default map[string]string            `yaml:"default"`
	Dates   map[string]map[string]string `yaml:"dates"`
}

// LoadTimetable reads a YAML timetable from path.
func LoadTimetable(path string) (*Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prayer timetable: %w", err)
	}
	return ParseTimetable(data)
}

// ParseTimetable decodes a YAML timetable. Malformed times are kept and only
// logged; the planner degrades them at planning time.
func ParseTimetable(data []byte) (*Timetable, error) {
	var tt Timetable
	if err := yaml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse prayer timetable: %w", err)
	}

	for date := range tt.Dates {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return nil, fmt.Errorf("invalid timetable date %q: expected YYYY-MM-DD", date)
		}
	}

	for _, warning := range tt.Problems() {
		logger.Warn("Prayer timetable entry", "problem", warning)
	}
	return &tt, nil
}

// Problems lists entries that are not valid HH:MM times.
func (tt *Timetable) Problems() []string {
	var problems []string
	check := func(scope string, times map[string]string) {
		for name, value := range times {
			if _, err := time.Parse(constants.TimeFormat, value); err != nil {
				problems = append(problems, fmt.Sprintf("%s %s: invalid time %q", scope, name, value))
			}
		}
	}

	check("default", tt.Default)
	for date, times := range tt.Dates {
		check(date, times)
	}
	sort.Strings(problems)
	return problems
}

// Times merges the day's overrides over the defaults and returns them in
// canonical prayer order. Names outside that order follow, sorted.
func (tt *Timetable) Times(day time.Time) ([]models.PrayerTime, error) {
	merged := make(map[string]string, len(tt.Default))
	for name, value := range tt.Default {
		merged[strings.ToLower(name)] = value
	}
	for name, value := range tt.Dates[day.Format(constants.DateFormat)] {
		merged[strings.ToLower(name)] = value
	}

	times := make([]models.PrayerTime, 0, len(merged))
	for _, name := range models.PrayerOrder {
		if value, ok := merged[name]; ok {
			times = append(times, models.PrayerTime{Name: name, Time: value})
			delete(merged, name)
		}
	}

	extra := make([]string, 0, len(merged))
	for name := range merged {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		times = append(times, models.PrayerTime{Name: name, Time: merged[name]})
	}

	return times, nil
}
