// Package delivery provides the delivery callbacks the wird host registers
// with the scheduler.
package delivery

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/models"
	"github.com/julianstephens/wird/internal/scheduler"
)

// Details returns the payload lines shown under a reminder's message.
func Details(r models.Reminder) []string {
	switch p := r.Payload.(type) {
	case models.HadithPayload:
		return []string{p.Hadith.Arabic, fmt.Sprintf("%s, %s", p.Hadith.Narrator, p.Hadith.Source)}
	case models.VersePayload:
		return []string{p.Verse.Arabic}
	case models.FridayPayload:
		lines := make([]string, 0, len(p.Ayahs))
		for _, a := range p.Ayahs {
			lines = append(lines, fmt.Sprintf("%s (%d)", a.Arabic, a.Ayah))
		}
		return lines
	case models.HourlyPayload:
		return []string{p.Dhikr.Arabic}
	case models.PrayerPayload:
		return []string{fmt.Sprintf("%s at %s", p.Name, p.PrayerTime.Format(constants.TimeFormat))}
	default:
		return nil
	}
}

// Fanout delivers to every sink in order. A failing sink does not stop the
// rest; their errors are joined.
func Fanout(sinks ...scheduler.DeliveryFunc) scheduler.DeliveryFunc {
	return func(r models.Reminder) error {
		var errs []error
		for _, sink := range sinks {
			if sink == nil {
				continue
			}
			if err := sink(r); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
