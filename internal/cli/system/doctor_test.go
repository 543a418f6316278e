package system

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/prayer"
	"github.com/julianstephens/wird/internal/scheduler"
	"github.com/julianstephens/wird/internal/storage"
	"github.com/julianstephens/wird/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*testContext, func()) {
	ctx, out, _, cleanup := setupTestDB(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if _, err := ctx.Settings.Reset(); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return &testContext{ctx, out}, cleanup
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	tc, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(tc.Context); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, tc.out.String())
	}
	if !strings.Contains(tc.out.String(), "All diagnostics passed!") {
		t.Errorf("unexpected output:\n%s", tc.out.String())
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, out, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail before init")
	}
	if !strings.Contains(out.String(), "SKIPPED") {
		t.Errorf("expected storage-dependent checks to be skipped, got:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	tc, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	sqliteStore, ok := tc.Store.(*sqlite.Store)
	if !ok {
		t.Fatal("expected sqlite store")
	}
	if _, err := sqliteStore.GetDB().Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to clear schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(tc.Context); err == nil {
		t.Error("doctor should fail with pending migrations")
	}
	if !strings.Contains(tc.out.String(), "Schema version: FAIL") {
		t.Errorf("expected schema failure, got:\n%s", tc.out.String())
	}
}

func TestDoctorCmd_Checks(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(t *testing.T, tc *testContext)
		wantErr  bool
		wantLine string
	}{
		{
			name: "corrupt settings",
			mutate: func(t *testing.T, tc *testContext) {
				if err := tc.Store.SetItem(constants.SettingsKey, "[1,2,3]"); err != nil {
					t.Fatal(err)
				}
			},
			wantErr:  true,
			wantLine: "Settings record: FAIL",
		},
		{
			name: "missing settings",
			mutate: func(t *testing.T, tc *testContext) {
				if err := tc.Store.RemoveItem(constants.SettingsKey); err != nil {
					t.Fatal(err)
				}
			},
			wantLine: "Settings record: WARNING",
		},
		{
			name: "tray process mismatch",
			mutate: func(_ *testing.T, tc *testContext) {
				tc.Notifier = &fakeNotifier{permission: scheduler.PermissionDenied}
			},
			wantErr:  true,
			wantLine: "Desktop notifications: FAIL",
		},
		{
			name: "tray not running",
			mutate: func(_ *testing.T, tc *testContext) {
				tc.Notifier = &fakeNotifier{permission: scheduler.PermissionDefault}
			},
			wantLine: "Desktop notifications: WARNING",
		},
		{
			name: "no timetable",
			mutate: func(_ *testing.T, tc *testContext) {
				tc.Prayer = nil
			},
			wantLine: "Prayer timetable: WARNING",
		},
		{
			name: "timetable problems",
			mutate: func(t *testing.T, tc *testContext) {
				tt, err := prayer.ParseTimetable([]byte("default:\n  fajr: \"5am\"\n"))
				if err != nil {
					t.Fatal(err)
				}
				tc.Prayer = tt
			},
			wantLine: "Prayer timetable: WARNING",
		},
		{
			name: "utc clock",
			mutate: func(_ *testing.T, tc *testContext) {
				tc.Location = time.UTC
			},
			wantLine: "Clock/timezone: WARNING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, cleanup := setupTestDoctorDB(t)
			defer cleanup()

			tt.mutate(t, tc)

			err := (&DoctorCmd{}).Run(tc.Context)
			if (err != nil) != tt.wantErr {
				t.Errorf("DoctorCmd.Run() error = %v, wantErr %v\n%s", err, tt.wantErr, tc.out.String())
			}
			if !strings.Contains(tc.out.String(), tt.wantLine) {
				t.Errorf("expected %q in output:\n%s", tt.wantLine, tc.out.String())
			}
		})
	}
}

func TestDoctorCmd_MemoryStore(t *testing.T) {
	ctx, out := newContext(t, storage.NewMemoryStore())

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on memory store: %v\n%s", err, out.String())
	}
}
