// Package ledger holds the planned reminders for the current day and decides
// when they must be regenerated.
package ledger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
	"github.com/julianstephens/wird/internal/planner"
	"github.com/julianstephens/wird/internal/storage"
)

type Ledger struct {
	mu      sync.Mutex
	store   storage.Provider
	planner *planner.Planner
	entries []models.Reminder
	// claimed remembers what was delivered on the marker day so a rebuilt
	// batch never re-delivers it
	claimed    map[string]time.Time
	claimedDay string

	updating atomic.Bool
}

func New(store storage.Provider, p *planner.Planner) *Ledger {
	if p == nil {
		p = planner.New(nil)
	}
	return &Ledger{
		store:   store,
		planner: p,
		claimed: make(map[string]time.Time),
	}
}

// Regenerate rebuilds the ledger when the day marker is stale or nothing in it
// is still waiting to be delivered. Entries that came due but were not yet
// polled count as waiting. It reports whether a new batch was planned.
// Concurrent calls return false without planning.
func (l *Ledger) Regenerate(now time.Time, s models.Settings, prayerTimes []models.PrayerTime) (bool, error) {
	if !l.updating.CompareAndSwap(false, true) {
		logger.Debug("Regeneration already in progress, skipping")
		return false, nil
	}
	defer l.updating.Store(false)

	if !s.Enabled {
		l.Clear()
		return false, nil
	}

	stale := l.MarkerStale(now)
	if !stale && l.Pending() > 0 {
		return false, nil
	}

	today := now.Format(constants.DateFormat)
	planned := l.planner.Plan(s, now, prayerTimes)

	l.mu.Lock()
	if l.claimedDay != today {
		l.claimed = make(map[string]time.Time)
		l.claimedDay = today
	}
	entries := make([]models.Reminder, 0, len(planned))
	for _, r := range planned {
		if fired, done := l.claimed[r.ID]; done && fired.Equal(r.FireTime) {
			continue
		}
		entries = append(entries, r)
	}
	l.entries = entries
	l.mu.Unlock()

	if err := l.store.SetItem(constants.DayMarkerKey, today); err != nil {
		return true, fmt.Errorf("failed to persist day marker: %w", err)
	}

	logger.Info("Regenerated reminders", "day", today, "count", len(entries), "stale_marker", stale)
	return true, nil
}

// Updating reports whether a regeneration is in progress.
func (l *Ledger) Updating() bool {
	return l.updating.Load()
}

// MarkerStale reports whether the persisted day marker differs from now's
// date. A marker that cannot be read counts as stale.
func (l *Ledger) MarkerStale(now time.Time) bool {
	marker, ok, err := l.store.GetItem(constants.DayMarkerKey)
	if err != nil {
		logger.Warn("Failed to read day marker", "error", err)
		return true
	}
	return !ok || marker != now.Format(constants.DateFormat)
}

// ClearMarker forces the next Regenerate to plan a new batch.
func (l *Ledger) ClearMarker() error {
	if err := l.store.RemoveItem(constants.DayMarkerKey); err != nil {
		return fmt.Errorf("failed to clear day marker: %w", err)
	}
	return nil
}

// ClaimDue marks every due entry shown and returns them. Each entry is
// returned by at most one call.
func (l *Ledger) ClaimDue(now time.Time) []models.Reminder {
	l.mu.Lock()
	defer l.mu.Unlock()

	var due []models.Reminder
	for i := range l.entries {
		if l.entries[i].IsDue(now) {
			l.markLocked(i)
			due = append(due, l.entries[i])
		}
	}
	return due
}

func (l *Ledger) markLocked(i int) {
	l.entries[i].Shown = true
	l.claimed[l.entries[i].ID] = l.entries[i].FireTime
}

// Prune drops shown entries whose fire time has passed and returns how many
// were removed.
func (l *Ledger) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	for _, r := range l.entries {
		if r.Shown && !r.FireTime.After(now) {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(l.entries) - len(kept)
	l.entries = kept
	return removed
}

// Clear discards every entry.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Entries returns a copy of the ledger in fire-time order.
func (l *Ledger) Entries() []models.Reminder {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Reminder, len(l.entries))
	copy(out, l.entries)
	return out
}

// Pending counts entries not yet delivered, due or not.
func (l *Ledger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := range l.entries {
		if !l.entries[i].Shown {
			n++
		}
	}
	return n
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Active counts unshown entries still ahead of now.
func (l *Ledger) Active(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := range l.entries {
		if l.entries[i].IsActive(now) {
			n++
		}
	}
	return n
}
