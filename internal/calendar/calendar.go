// Package calendar exports planned reminders as iCalendar events so a day's
// plan can be imported into any calendar app.
package calendar

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/delivery"
	"github.com/julianstephens/wird/internal/models"
)

const (
	productID     = "-//wird//Reminders//EN"
	eventDuration = 5 * time.Minute
)

// Build returns a calendar with one event per reminder. stamp is written as
// DTSTAMP so identical plans encode identically.
func Build(reminders []models.Reminder, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, r := range reminders {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", r.ID, constants.AppName))
		event.Props.SetText(ical.PropSummary, r.Title)
		event.Props.SetText(ical.PropDescription, description(r))
		event.Props.SetText(ical.PropCategories, string(r.Category))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, r.FireTime.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, r.FireTime.Add(eventDuration).UTC())

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

func description(r models.Reminder) string {
	lines := append([]string{r.Message}, delivery.Details(r)...)
	return strings.Join(lines, "\n")
}

// Write encodes the reminders as an .ics document.
func Write(w io.Writer, reminders []models.Reminder, stamp time.Time) error {
	if err := ical.NewEncoder(w).Encode(Build(reminders, stamp)); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// Encode returns the reminders as an .ics document.
func Encode(reminders []models.Reminder, stamp time.Time) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, reminders, stamp); err != nil {
		return "", err
	}
	return buf.String(), nil
}
