package models

import "strings"

// Prayer names as supplied by prayer-time providers
const (
	PrayerFajr    = "fajr"
	PrayerSunrise = "sunrise"
	PrayerDhuhr   = "dhuhr"
	PrayerAsr     = "asr"
	PrayerMaghrib = "maghrib"
	PrayerIsha    = "isha"
)

// PrayerOrder is the canonical order of a day's prayer times.
var PrayerOrder = []string{PrayerFajr, PrayerSunrise, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// PrayerTime is one named prayer instant for a day
type PrayerTime struct {
	Name string `json:"name" yaml:"name"`
	Time string `json:"time" yaml:"time"` // HH:MM
}

// IsSunrise reports whether the entry is the sunrise marker, which is not a prayer.
func (p PrayerTime) IsSunrise() bool {
	return strings.EqualFold(p.Name, PrayerSunrise)
}

// DisplayName returns the capitalized prayer name.
func (p PrayerTime) DisplayName() string {
	if p.Name == "" {
		return "Prayer"
	}
	return strings.ToUpper(p.Name[:1]) + p.Name[1:]
}
