package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/scheduler"
	wsettings "github.com/julianstephens/wird/internal/settings"
	"github.com/julianstephens/wird/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	prefs := wsettings.New(store)
	svc, err := scheduler.New(scheduler.Config{Store: store, Settings: prefs})
	if err != nil {
		t.Fatalf("failed to create scheduler: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:     store,
		Settings:  prefs,
		Scheduler: svc,
		Out:       out,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, out, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}

	for _, want := range []string{"Current Settings:", constants.DefaultDailyHadithTime, "every 240 min"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected listing to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	hadithTime := "07:15"
	interval := 90
	cmd := &SettingsCmd{
		DailyHadithTime:        &hadithTime,
		HourlyReminderInterval: &interval,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if !strings.Contains(out.String(), "updated successfully: dailyHadithTime, hourlyReminderInterval") {
		t.Errorf("expected changed keys to be reported, got %q", out.String())
	}
	if !strings.Contains(out.String(), "planned again") {
		t.Errorf("expected critical change notice, got %q", out.String())
	}

	// Read back through a fresh store to prove the change was persisted
	reloaded, err := wsettings.New(ctx.Store).Load()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if reloaded.DailyHadithTime != hadithTime {
		t.Errorf("expected DailyHadithTime %q, got %q", hadithTime, reloaded.DailyHadithTime)
	}
	if reloaded.HourlyReminderInterval != interval {
		t.Errorf("expected HourlyReminderInterval %d, got %d", interval, reloaded.HourlyReminderInterval)
	}
}

func TestSettingsCmd_NonCriticalUpdate(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	off := false
	cmd := &SettingsCmd{BrowserNotifications: &off}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if strings.Contains(out.String(), "planned again") {
		t.Errorf("desktop notification toggle should not replan, got %q", out.String())
	}
	if ctx.Settings.Current().BrowserNotifications {
		t.Error("expected BrowserNotifications to be off")
	}
}

func TestSettingsCmd_InvalidTimeKeepsPrevious(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	bad := "25:99"
	cmd := &SettingsCmd{DhikrMorningTime: &bad}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if got := ctx.Settings.Current().DhikrMorningTime; got != constants.DefaultDhikrMorningTime {
		t.Errorf("expected invalid time to keep %q, got %q", constants.DefaultDhikrMorningTime, got)
	}
	if !strings.Contains(out.String(), "Settings already up to date.") {
		t.Errorf("expected no effective change, got %q", out.String())
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings command failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSettingsCmd_Reset(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	off := false
	if err := (&SettingsCmd{Enabled: &off}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if ctx.Settings.Current().Enabled {
		t.Fatal("expected reminders to be disabled")
	}

	if err := (&SettingsCmd{Reset: true}).Run(ctx); err != nil {
		t.Fatalf("settings reset failed: %v", err)
	}
	if !ctx.Settings.Current().Enabled {
		t.Error("expected reset to enable reminders again")
	}
}
