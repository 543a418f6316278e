package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized wird storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying settings from: %s\n", c.Source)
		if err := copySettings(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "Settings copied successfully!")
	}

	_, ok, err := ctx.Store.GetItem(constants.SettingsKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		if _, err := ctx.Settings.Reset(); err != nil {
			return fmt.Errorf("failed to write default settings: %w", err)
		}
		fmt.Fprintln(out, "Default reminder settings written.")
	}

	return nil
}

// removeExisting deletes the SQLite file behind ctx.Store. Other backends are
// left alone.
func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force only applies to SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(sqlite.ExpandPath(c.Source)); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		ctx.PerformAutomaticBackup()
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Fprintf(ctx.Stdout(), "Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copySettings moves the persisted settings record from another store. The
// day marker is not copied so the destination plans its own day.
func copySettings(ctx *cli.Context, source string) error {
	sourceStore, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	raw, ok, err := sourceStore.GetItem(constants.SettingsKey)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if !ok {
		fmt.Fprintln(ctx.Stdout(), "  Source has no settings, keeping defaults")
		return nil
	}
	if err := ctx.Store.SetItem(constants.SettingsKey, raw); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	// Re-read so a damaged source record is repaired on the way in
	if _, err := ctx.Settings.Load(); err != nil {
		return fmt.Errorf("failed to load copied settings: %w", err)
	}
	return nil
}
