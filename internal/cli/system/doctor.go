package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/keyring"
	"github.com/julianstephens/wird/internal/migration"
	"github.com/julianstephens/wird/internal/planner"
	"github.com/julianstephens/wird/internal/prayer"
	"github.com/julianstephens/wird/internal/scheduler"
	"github.com/julianstephens/wird/internal/storage/sqlite"
	"github.com/julianstephens/wird/migrations"
)

type DoctorCmd struct{}

// errWarning marks a check result that does not fail the run
type errWarning struct{ msg string }

func (w errWarning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return errWarning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name    string
	needsDB bool
	run     func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	checks := []check{
		{name: "Storage reachable", run: checkStorageReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Settings record", needsDB: true, run: checkSettingsRecord},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Prayer timetable", run: checkPrayerTimetable},
		{name: "Today's plan", needsDB: true, run: checkPlan},
		{name: "OS keyring", run: checkKeyring},
		{name: "Desktop notifications", needsDB: true, run: checkNotifier},
	}

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		if i == 0 && err == nil {
			dbReachable = true
		}
		if report(out, c.name, err) {
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

// report prints a check result and reports whether it failed.
func report(out io.Writer, name string, err error) bool {
	var warning errWarning
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ %s: OK\n", name)
		return false
	case errors.As(err, &warning):
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
		return false
	default:
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
		return true
	}
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	if _, _, err := ctx.Store.GetItem(constants.DayMarkerKey); err != nil {
		return fmt.Errorf("failed to read from storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Other backends validate their schema on Load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := migrations.SQLite()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS, migration.SQLite)

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("%d migration(s) pending, run 'wird init'", latestVersion-currentVersion)
	}
	return nil
}

func checkSettingsRecord(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.GetItem(constants.SettingsKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return warnf("no settings stored, defaults are in use")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return fmt.Errorf("settings record is not a JSON object and will be discarded on next load")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil || ctx.Location.String() == "UTC" {
		return warnf("reminders are planned in %s, set WIRD_TIMEZONE if that is not your local time", now.Location())
	}
	return nil
}

func checkPrayerTimetable(ctx *cli.Context) error {
	if ctx.Prayer == nil {
		if ctx.Settings != nil && ctx.Settings.Current().PrayerReminders {
			return warnf("prayer reminders are on but no timetable is configured (WIRD_PRAYER_TIMES)")
		}
		return nil
	}

	if tt, ok := ctx.Prayer.(*prayer.Timetable); ok {
		if problems := tt.Problems(); len(problems) > 0 {
			return warnf("%d timetable problem(s), first: %s", len(problems), problems[0])
		}
	}

	times, err := ctx.PrayerTimes(ctx.Clock())
	if err != nil {
		return fmt.Errorf("failed to read today's prayer times: %w", err)
	}
	if len(times) == 0 {
		return warnf("timetable has no prayer times for today")
	}
	return nil
}

func checkPlan(ctx *cli.Context) error {
	if ctx.Settings == nil {
		return nil
	}
	current := ctx.Settings.Current()
	if !current.Enabled {
		return warnf("reminders are disabled, enable them with 'wird settings --enabled'")
	}

	now := ctx.Clock()
	times, err := ctx.PrayerTimes(now)
	if err != nil {
		times = nil
	}
	reminders := planner.New(ctx.Content).Plan(current, now, times)
	if len(reminders) == 0 {
		return warnf("nothing left to remind today")
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return warnf("OS keyring is not available, secrets must come from the environment")
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	if ctx.Settings == nil || !ctx.Settings.Current().BrowserNotifications {
		return nil
	}
	if ctx.Notifier == nil {
		return warnf("desktop notifications are on but no notifier is configured")
	}

	switch permission := ctx.Notifier.RequestPermission(); permission {
	case scheduler.PermissionGranted:
		return nil
	case scheduler.PermissionDenied:
		return fmt.Errorf("the notifier lockfile points at an unexpected process")
	default:
		return warnf("%s is not running, desktop notifications will be skipped", constants.TrayExecutablePrefix)
	}
}
