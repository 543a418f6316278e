package reminders

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wird/internal/calendar"
	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/planner"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type PlanCmd struct {
	Date    string `help:"Plan from this instant (YYYY-MM-DD, YYYY-MM-DDTHH:MM or HH:MM). Defaults to now."`
	ICS     string `help:"Also write the plan to this iCalendar file." type:"path"`
	Details bool   `help:"Show the full reminder text."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	now := ctx.Clock()
	if c.Date != "" {
		at, err := cli.ParseInstant(c.Date, now, ctx.Location)
		if err != nil {
			return err
		}
		now = at
	}

	current := ctx.Settings.Current()
	if !current.Enabled {
		fmt.Fprintln(out, "Reminders are disabled. Enable them with 'wird settings --enabled'.")
		return nil
	}

	times, err := ctx.PrayerTimes(now)
	if err != nil {
		logger.Warn("Prayer times unavailable", "error", err)
		times = nil
	}

	reminders := planner.New(ctx.Content).Plan(current, now, times)

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Reminders for %s from %s", now.Format(constants.DateFormat), now.Format(constants.TimeFormat))))
	if len(reminders) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("  Nothing left to remind today."))
	}
	for _, r := range reminders {
		fmt.Fprintf(out, "  %s  %-12s %s\n", r.FireTime.Format(constants.TimeFormat), r.Category, r.Title)
		if c.Details && r.Message != "" {
			fmt.Fprintln(out, mutedStyle.Render("                     "+r.Message))
		}
	}

	if c.ICS != "" {
		f, err := os.Create(c.ICS)
		if err != nil {
			return fmt.Errorf("failed to create calendar file: %w", err)
		}
		defer f.Close()

		if err := calendar.Write(f, reminders, ctx.Clock()); err != nil {
			return fmt.Errorf("failed to write calendar: %w", err)
		}
		fmt.Fprintf(out, "\nWrote %d reminder(s) to %s\n", len(reminders), c.ICS)
	}

	return nil
}
