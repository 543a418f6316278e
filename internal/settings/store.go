// Package settings loads, validates and persists the reminder preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
	"github.com/julianstephens/wird/internal/storage"
)

// Change describes the effect of a Save
type Change struct {
	Previous models.Settings
	Current  models.Settings
	// Critical is true when the planned reminders no longer match Current
	Critical bool
}

// Store owns the process-wide settings record
type Store struct {
	mu      sync.Mutex
	store   storage.Provider
	current *models.Settings
}

func New(store storage.Provider) *Store {
	return &Store{store: store}
}

// Load reads the persisted settings, repairing what it can. Missing data yields
// the defaults; a record that is not a JSON object is removed; individual
// fields with the wrong type or an out-of-range value fall back to their
// default while the remaining fields are kept.
func (s *Store) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (models.Settings, error) {
	raw, ok, err := s.store.GetItem(constants.SettingsKey)
	if err != nil {
		return models.DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if ok {
		settings = decode(raw, s.store)
	}

	s.current = &settings
	return settings, nil
}

// Current returns the cached settings, loading them on first use. Storage
// errors degrade to the defaults.
func (s *Store) Current() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return *s.current
	}
	settings, err := s.loadLocked()
	if err != nil {
		logger.Error("Failed to load settings, using defaults", "error", err)
	}
	return settings
}

// Save merges the non-nil fields of patch over the current settings, persists
// the full record and reports whether a critical field changed.
func (s *Store) Save(patch models.SettingsPatch) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous models.Settings
	if s.current != nil {
		previous = *s.current
	} else {
		loaded, err := s.loadLocked()
		if err != nil {
			return Change{}, err
		}
		previous = loaded
	}

	merged := sanitize(models.ApplyPatch(previous, patch), previous)
	if err := s.persist(merged); err != nil {
		return Change{}, err
	}
	s.current = &merged

	return Change{
		Previous: previous,
		Current:  merged,
		Critical: models.CriticalChange(previous, merged),
	}, nil
}

// Reset replaces the persisted settings with the defaults.
func (s *Store) Reset() (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := models.DefaultSettings()
	if s.current != nil {
		previous = *s.current
	}

	defaults := models.DefaultSettings()
	if err := s.persist(defaults); err != nil {
		return Change{}, err
	}
	s.current = &defaults

	return Change{
		Previous: previous,
		Current:  defaults,
		Critical: models.CriticalChange(previous, defaults),
	}, nil
}

func (s *Store) persist(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.SetItem(constants.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// decode salvages every well-formed field of raw over the defaults
func decode(raw string, store storage.Provider) models.Settings {
	settings := models.DefaultSettings()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		logger.Warn("Discarding corrupt settings record", "error", err)
		if err := store.RemoveItem(constants.SettingsKey); err != nil {
			logger.Error("Failed to remove corrupt settings record", "error", err)
		}
		return settings
	}

	v := reflect.ValueOf(&settings).Elem()
	for key, value := range fields {
		field, ok := fieldByJSONKey(v, key)
		if !ok {
			continue
		}
		// Decode through a pointer so null is told apart from a zero value
		target := reflect.New(reflect.PointerTo(field.Type()))
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			logger.Warn("Ignoring invalid setting", "key", key, "error", err)
			continue
		}
		if target.Elem().IsNil() {
			logger.Warn("Ignoring null setting", "key", key)
			continue
		}
		field.Set(target.Elem().Elem())
	}

	defaults := reflect.ValueOf(models.DefaultSettings())
	for _, key := range invalidFields(settings) {
		field, ok := fieldByJSONKey(v, key)
		if !ok {
			continue
		}
		logger.Warn("Setting out of range, using default", "key", key, "value", field.Interface())
		def, _ := fieldByJSONKey(defaults, key)
		field.Set(def)
	}

	return settings
}

// fieldByJSONKey finds the struct field persisted under key
func fieldByJSONKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// sanitize clamps numeric fields to their minimum and keeps the previous value
// for any time string that is not HH:MM
func sanitize(s, previous models.Settings) models.Settings {
	s.PrayerReminderMinutes = clampMin(constants.SettingPrayerReminderMinutes, s.PrayerReminderMinutes, 0)
	s.DailyHadithRepeatInterval = clampMin(constants.SettingDailyHadithRepeatInterval, s.DailyHadithRepeatInterval, 1)
	s.DailyQuranVerseRepeatInterval = clampMin(constants.SettingDailyQuranVerseRepeatInterval, s.DailyQuranVerseRepeatInterval, 1)
	s.HourlyReminderInterval = clampMin(constants.SettingHourlyReminderInterval, s.HourlyReminderInterval, 1)

	s.DailyHadithTime = validOr(constants.SettingDailyHadithTime, s.DailyHadithTime, previous.DailyHadithTime)
	s.DailyQuranVerseTime = validOr(constants.SettingDailyQuranVerseTime, s.DailyQuranVerseTime, previous.DailyQuranVerseTime)
	s.DhikrMorningTime = validOr(constants.SettingDhikrMorningTime, s.DhikrMorningTime, previous.DhikrMorningTime)
	s.FridayQuranTime = validOr(constants.SettingFridayQuranTime, s.FridayQuranTime, previous.FridayQuranTime)
	return s
}

func clampMin(key string, value, min int) int {
	if value < min {
		logger.Warn("Setting below minimum, clamping", "key", key, "value", value, "min", min)
		return min
	}
	return value
}

func validOr(key, value, fallback string) string {
	if ValidTime(value) {
		return value
	}
	logger.Warn("Invalid time setting, keeping previous value", "key", key, "value", value, "previous", fallback)
	return fallback
}
