package settings

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/models"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore every setting to its default."`

	Enabled *bool `help:"Master switch for all reminders."`

	PrayerReminders       *bool `help:"Remind before each prayer."`
	PrayerReminderMinutes *int  `help:"Minutes before a prayer to remind."`

	DailyHadith               *bool   `help:"Daily hadith reminders."`
	DailyHadithTime           *string `help:"First hadith reminder (HH:MM)."`
	DailyHadithRepeat         *bool   `help:"Repeat the hadith reminder through the day."`
	DailyHadithRepeatInterval *int    `help:"Minutes between hadith reminders."`

	DailyQuranVerse               *bool   `help:"Daily Quran verse reminders."`
	DailyQuranVerseTime           *string `help:"First verse reminder (HH:MM)."`
	DailyQuranVerseRepeat         *bool   `help:"Repeat the verse reminder through the day."`
	DailyQuranVerseRepeatInterval *int    `help:"Minutes between verse reminders."`

	DhikrReminders   *bool   `help:"Morning and evening dhikr reminders."`
	DhikrMorningTime *string `help:"Morning dhikr time (HH:MM)."`

	FridayQuran     *bool   `help:"Surah al-Kahf reminder on Fridays."`
	FridayQuranTime *string `help:"Friday reminder time (HH:MM)."`

	HourlyReminders        *bool `help:"Periodic dhikr reminders."`
	HourlyReminderInterval *int  `help:"Minutes between periodic reminders."`

	BrowserNotifications *bool `help:"Also raise a desktop notification through wird-tray."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Reset {
		ctx.PerformAutomaticBackup()
		if _, err := ctx.Settings.Reset(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		fmt.Fprintln(out, "Settings reset to defaults.")
		return nil
	}

	if c.List {
		current, err := ctx.Settings.Load()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		printSettings(out, current)
		return nil
	}

	patch := c.patch()
	if patch.IsEmpty() {
		fmt.Fprintln(out, "No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	change, err := ctx.Scheduler.UpdateSettings(patch)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	changed := models.ChangedFields(change.Previous, change.Current)
	if len(changed) == 0 {
		fmt.Fprintln(out, "Settings already up to date.")
		return nil
	}

	fmt.Fprintf(out, "Settings updated successfully: %s\n", strings.Join(changed, ", "))
	if change.Critical {
		fmt.Fprintln(out, "Today's reminders will be planned again.")
	}
	return nil
}

func (c *SettingsCmd) patch() models.SettingsPatch {
	return models.SettingsPatch{
		Enabled:                       c.Enabled,
		PrayerReminders:               c.PrayerReminders,
		PrayerReminderMinutes:         c.PrayerReminderMinutes,
		DailyHadith:                   c.DailyHadith,
		DailyHadithTime:               c.DailyHadithTime,
		DailyHadithRepeat:             c.DailyHadithRepeat,
		DailyHadithRepeatInterval:     c.DailyHadithRepeatInterval,
		DailyQuranVerse:               c.DailyQuranVerse,
		DailyQuranVerseTime:           c.DailyQuranVerseTime,
		DailyQuranVerseRepeat:         c.DailyQuranVerseRepeat,
		DailyQuranVerseRepeatInterval: c.DailyQuranVerseRepeatInterval,
		DhikrReminders:                c.DhikrReminders,
		DhikrMorningTime:              c.DhikrMorningTime,
		FridayQuran:                   c.FridayQuran,
		FridayQuranTime:               c.FridayQuranTime,
		HourlyReminders:               c.HourlyReminders,
		HourlyReminderInterval:        c.HourlyReminderInterval,
		BrowserNotifications:          c.BrowserNotifications,
	}
}

func printSettings(out io.Writer, s models.Settings) {
	fmt.Fprintln(out, "Current Settings:")
	fmt.Fprintf(out, "  Reminders:             %s\n", cli.FormatBool(s.Enabled))
	fmt.Fprintf(out, "  Desktop Notifications: %s\n", cli.FormatBool(s.BrowserNotifications))

	fmt.Fprintln(out, "\nPrayer:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.PrayerReminders))
	fmt.Fprintf(out, "  Minutes Before:        %d min\n", s.PrayerReminderMinutes)

	fmt.Fprintln(out, "\nHadith:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.DailyHadith))
	fmt.Fprintf(out, "  Time:                  %s\n", s.DailyHadithTime)
	fmt.Fprintf(out, "  Repeat:                %s every %d min\n", cli.FormatBool(s.DailyHadithRepeat), s.DailyHadithRepeatInterval)

	fmt.Fprintln(out, "\nQuran Verse:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.DailyQuranVerse))
	fmt.Fprintf(out, "  Time:                  %s\n", s.DailyQuranVerseTime)
	fmt.Fprintf(out, "  Repeat:                %s every %d min\n", cli.FormatBool(s.DailyQuranVerseRepeat), s.DailyQuranVerseRepeatInterval)

	fmt.Fprintln(out, "\nDhikr:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.DhikrReminders))
	fmt.Fprintf(out, "  Morning:               %s\n", s.DhikrMorningTime)

	fmt.Fprintln(out, "\nFriday al-Kahf:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.FridayQuran))
	fmt.Fprintf(out, "  Time:                  %s\n", s.FridayQuranTime)

	fmt.Fprintln(out, "\nPeriodic Dhikr:")
	fmt.Fprintf(out, "  Enabled:               %s\n", cli.FormatBool(s.HourlyReminders))
	fmt.Fprintf(out, "  Interval:              %d min\n", s.HourlyReminderInterval)
}
