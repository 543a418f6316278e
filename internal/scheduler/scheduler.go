// Package scheduler runs the reminder loop: it polls the ledger on a fixed
// tick, hands every due reminder to the registered delivery callback exactly
// once and keeps the ledger planned across settings changes and midnight.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/content"
	"github.com/julianstephens/wird/internal/ledger"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
	"github.com/julianstephens/wird/internal/planner"
	"github.com/julianstephens/wird/internal/prayer"
	"github.com/julianstephens/wird/internal/settings"
	"github.com/julianstephens/wird/internal/storage"
)

var (
	// ErrNoDelivery is returned by Start before a delivery callback is registered
	ErrNoDelivery = errors.New("no delivery callback registered")
	// ErrDisabled is returned by Start when reminders are switched off
	ErrDisabled = errors.New("reminders are disabled")
)

// DeliveryFunc receives each due reminder once. Errors are logged; the
// reminder counts as delivered either way.
type DeliveryFunc func(models.Reminder) error

// Permission is the state of the native notification permission
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// NativeNotifier raises a platform notification alongside the callback
type NativeNotifier interface {
	RequestPermission() Permission
	Show(title, body string) error
}

type Config struct {
	Store storage.Provider

	// Optional collaborators; nil values get defaults built on Store
	Settings *settings.Store
	Ledger   *ledger.Ledger
	Content  content.Provider
	Prayer   prayer.Provider
	Notifier NativeNotifier

	// Now overrides the wall clock
	Now func() time.Time
	// Location is used for the midnight regeneration, defaults to time.Local
	Location *time.Location
}

// Service is the scheduler handle owned by the host
type Service struct {
	settings *settings.Store
	ledger   *ledger.Ledger
	prayer   prayer.Provider
	notifier NativeNotifier
	now      func() time.Time
	location *time.Location

	pollInterval     time.Duration
	retryDelay       time.Duration
	emptyLedgerDelay time.Duration
	settingsDelay    time.Duration

	mu         sync.Mutex
	delivery   DeliveryFunc
	cron       *cron.Cron
	done       chan struct{}
	ctx        context.Context
	regenTimer *time.Timer
	permission Permission
}

func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("scheduler requires a storage provider")
	}

	s := &Service{
		settings:         cfg.Settings,
		ledger:           cfg.Ledger,
		prayer:           cfg.Prayer,
		notifier:         cfg.Notifier,
		now:              cfg.Now,
		location:         cfg.Location,
		pollInterval:     constants.PollInterval,
		retryDelay:       constants.CallbackRetryDelay,
		emptyLedgerDelay: constants.EmptyLedgerRegenDelay,
		settingsDelay:    constants.SettingsRegenDelay,
	}
	if s.settings == nil {
		s.settings = settings.New(cfg.Store)
	}
	if s.ledger == nil {
		s.ledger = ledger.New(cfg.Store, planner.New(cfg.Content))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.location == nil {
		s.location = time.Local
	}
	return s, nil
}

// SetDelivery registers the delivery callback. It must be called before Start.
func (s *Service) SetDelivery(fn DeliveryFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivery = fn
}

func (s *Service) callback() DeliveryFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivery
}

// Start replaces any running loop, plans and polls once, then polls on every
// tick and regenerates at midnight until Stop or ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	current := s.settings.Current()

	s.mu.Lock()
	if s.delivery == nil {
		s.mu.Unlock()
		return ErrNoDelivery
	}
	if !current.Enabled {
		s.mu.Unlock()
		return ErrDisabled
	}
	s.stopLocked()

	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)
	c.Schedule(cron.Every(s.pollInterval), cron.FuncJob(s.Poll))
	if _, err := c.AddFunc(constants.MidnightRegenCron, s.midnight); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to schedule midnight regeneration: %w", err)
	}

	done := make(chan struct{})
	s.cron = c
	s.done = done
	s.ctx = ctx
	s.mu.Unlock()

	if current.BrowserNotifications {
		s.nativePermission()
	}

	if _, err := s.Regenerate(); err != nil {
		logger.Error("Initial regeneration failed", "error", err)
	}
	s.Poll()

	// The first poll may have stopped the loop; only start what is still ours
	s.mu.Lock()
	if s.cron != c {
		s.mu.Unlock()
		logger.Info("Reminder scheduler stopped before its first tick")
		return nil
	}
	c.Start()
	s.mu.Unlock()
	logger.Info("Reminder scheduler started", "poll", s.pollInterval, "location", s.location, "active", s.ledger.Active(s.now()))

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}()
	return nil
}

// Stop halts the loop. It is safe to call when already stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		logger.Info("Reminder scheduler stopped")
	}
	s.stopLocked()
}

func (s *Service) stopLocked() {
	if s.cron != nil {
		// Jobs may call Stop, so running jobs are not awaited
		s.cron.Stop()
		s.cron = nil
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.regenTimer != nil {
		s.regenTimer.Stop()
		s.regenTimer = nil
	}
}

// Running reports whether the loop is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// Poll delivers every due reminder, prunes delivered entries and schedules a
// regeneration when the ledger has run dry on a stale day.
func (s *Service) Poll() {
	now := s.now()
	if s.ledger.Updating() {
		logger.Debug("Regeneration in progress, skipping poll")
		return
	}

	// A stale marker under a planned batch means another process changed the
	// settings or the day rolled over
	if s.ledger.Len() > 0 && s.ledger.MarkerStale(now) {
		if _, err := s.Regenerate(); err != nil {
			logger.Error("Regeneration on stale marker failed", "error", err)
		}
	}

	current := s.settings.Current()

	for _, r := range s.ledger.ClaimDue(now) {
		s.deliver(r, current)
	}

	s.ledger.Prune(now)

	if s.ledger.Len() == 0 && s.ledger.MarkerStale(now) {
		s.scheduleRegeneration(s.emptyLedgerDelay)
	}
}

// deliver hands a claimed reminder to the callback. Without a callback it
// retries once after retryDelay and then drops the reminder.
func (s *Service) deliver(r models.Reminder, current models.Settings) {
	s.notify(r, current)

	if cb := s.callback(); cb != nil {
		invoke(cb, r)
		return
	}

	logger.Warn("No delivery callback registered, retrying", "id", r.ID, "delay", s.retryDelay)
	time.AfterFunc(s.retryDelay, func() {
		cb := s.callback()
		if cb == nil {
			logger.Error("Dropping reminder, no delivery callback registered", "id", r.ID, "category", r.Category)
			return
		}
		invoke(cb, r)
	})
}

func invoke(cb DeliveryFunc, r models.Reminder) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Delivery callback panicked", "id", r.ID, "panic", p)
		}
	}()

	if err := cb(r); err != nil {
		logger.Error("Delivery callback failed", "id", r.ID, "category", r.Category, "error", err)
		return
	}
	logger.Debug("Delivered reminder", "id", r.ID, "category", r.Category)
}

// notify raises the native notification. Failures are logged and ignored.
func (s *Service) notify(r models.Reminder, current models.Settings) {
	if !current.Enabled || !current.BrowserNotifications || s.notifier == nil {
		return
	}
	if s.nativePermission() != PermissionGranted {
		return
	}
	if err := s.notifier.Show(r.Title, r.Message); err != nil {
		logger.Debug("Native notification failed", "id", r.ID, "error", err)
	}
}

// nativePermission requests the permission once and caches the answer.
func (s *Service) nativePermission() Permission {
	if s.notifier == nil {
		return PermissionDenied
	}

	s.mu.Lock()
	permission := s.permission
	s.mu.Unlock()
	if permission != "" {
		return permission
	}

	permission = s.notifier.RequestPermission()
	logger.Debug("Native notification permission", "permission", permission)

	s.mu.Lock()
	s.permission = permission
	s.mu.Unlock()
	return permission
}

// Regenerate plans a new batch when the ledger needs one. A stale day marker
// reloads the settings from storage first.
func (s *Service) Regenerate() (bool, error) {
	now := s.now()
	current := s.settings.Current()
	if s.ledger.MarkerStale(now) {
		current = s.reloadSettings(current)
	}
	return s.ledger.Regenerate(now, current, s.prayerTimes(now))
}

func (s *Service) reloadSettings(fallback models.Settings) models.Settings {
	loaded, err := s.settings.Load()
	if err != nil {
		logger.Error("Failed to reload settings, keeping cached values", "error", err)
		return fallback
	}
	if models.CriticalChange(fallback, loaded) {
		logger.Info("Settings changed in storage", "fields", models.ChangedFields(fallback, loaded))
	}
	return loaded
}

func (s *Service) prayerTimes(now time.Time) []models.PrayerTime {
	if s.prayer == nil {
		return nil
	}
	times, err := s.prayer.Times(now)
	if err != nil {
		logger.Warn("Prayer times unavailable", "error", err)
		return nil
	}
	return times
}

func (s *Service) midnight() {
	if _, err := s.Regenerate(); err != nil {
		logger.Error("Midnight regeneration failed", "error", err)
	}
}

// scheduleRegeneration runs Regenerate after delay. A later call replaces a
// pending one.
func (s *Service) scheduleRegeneration(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.regenTimer != nil {
		s.regenTimer.Stop()
	}
	s.regenTimer = time.AfterFunc(delay, func() {
		if _, err := s.Regenerate(); err != nil {
			logger.Error("Scheduled regeneration failed", "error", err)
		}
	})
}

// UpdateSettings saves patch and, when a critical field changed, discards the
// planned reminders. The loop then replans, stops when reminders were
// disabled, or restarts when they were enabled again.
func (s *Service) UpdateSettings(patch models.SettingsPatch) (settings.Change, error) {
	change, err := s.settings.Save(patch)
	if err != nil {
		return change, err
	}
	if !change.Critical {
		return change, nil
	}

	if err := s.ledger.ClearMarker(); err != nil {
		logger.Error("Failed to clear day marker", "error", err)
	}
	s.ledger.Clear()

	switch {
	case !change.Current.Enabled:
		s.Stop()
	case s.Running():
		s.scheduleRegeneration(s.settingsDelay)
	case !change.Previous.Enabled && s.callback() != nil:
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()
		if ctx == nil || ctx.Err() != nil {
			ctx = context.Background()
		}
		if err := s.Start(ctx); err != nil {
			logger.Error("Failed to restart scheduler", "error", err)
		}
	}
	return change, nil
}

// Settings returns the current settings.
func (s *Service) Settings() models.Settings {
	return s.settings.Current()
}

// Reminders returns the planned reminders in fire-time order.
func (s *Service) Reminders() []models.Reminder {
	return s.ledger.Entries()
}

// cronLogger routes cron's own logging through the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error(msg, append(keysAndValues, "error", err)...)
}
