package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/wird/internal/backup"
	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/content"
	"github.com/julianstephens/wird/internal/keyring"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
	"github.com/julianstephens/wird/internal/prayer"
	"github.com/julianstephens/wird/internal/scheduler"
	"github.com/julianstephens/wird/internal/settings"
	"github.com/julianstephens/wird/internal/storage"
	"github.com/julianstephens/wird/internal/storage/postgres"
	"github.com/julianstephens/wird/internal/storage/redis"
	"github.com/julianstephens/wird/internal/storage/sqlite"
)

// PostgresKeyword selects PostgreSQL with the connection string taken from
// WIRD_DB_CONNECTION or the OS keyring.
const PostgresKeyword = "postgres"

type Context struct {
	Store     storage.Provider
	Settings  *settings.Store
	Scheduler *scheduler.Service
	Content   content.Provider
	Prayer    prayer.Provider
	Notifier  scheduler.NativeNotifier
	Location  *time.Location

	// Out receives command output, stdout when nil
	Out io.Writer
	// In answers confirmation prompts, stdin when nil
	In io.Reader
	// Now overrides the wall clock
	Now func() time.Time
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Clock returns the current time in the configured location.
func (c *Context) Clock() time.Time {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return now
}

// PerformAutomaticBackup snapshots a SQLite store and only logs failures.
// Other backends are skipped.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	path, err := backup.NewManager(c.Store.GetConfigPath()).Create()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Info("Automatic backup created", "path", path)
}

// PrayerTimes returns the prayer times for day, nil without a provider.
func (c *Context) PrayerTimes(day time.Time) ([]models.PrayerTime, error) {
	if c.Prayer == nil {
		return nil, nil
	}
	return c.Prayer.Times(day)
}

// OpenStore picks the storage backend for config: a PostgreSQL URL, the
// "postgres" keyword, a redis:// URL, ":memory:" or a SQLite file path.
func OpenStore(config string) (storage.Provider, error) {
	switch {
	case config == PostgresKeyword:
		connStr, err := keyring.Resolve(keyring.SecretDatabase, os.Getenv("WIRD_DB_CONNECTION"))
		if err != nil {
			return nil, err
		}
		if connStr == "" {
			return nil, errors.New("no PostgreSQL connection string in WIRD_DB_CONNECTION or the OS keyring")
		}
		// Secrets from the keyring or environment may carry a password
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(config) || strings.Contains(config, "host="):
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	case redis.IsURL(config):
		return redis.New(config), nil
	case config == ":memory:":
		return storage.NewMemoryStore(), nil
	default:
		return sqlite.NewStore(config), nil
	}
}

// ParseInstant reads "YYYY-MM-DD", "YYYY-MM-DDTHH:MM" or "HH:MM" (today) in loc.
func ParseInstant(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)

	if t, err := time.ParseInLocation(constants.DateFormat+"T"+constants.TimeFormat, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.TimeFormat, value, loc); err == nil {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, YYYY-MM-DDTHH:MM or HH:MM", value)
}

// FormatBool renders a setting flag for listings
func FormatBool(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
