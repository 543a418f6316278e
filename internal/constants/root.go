package constants

import "time"

const (
	AppName           = "wird"
	DefaultConfigPath = "~/.config/wird/wird.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	SettingsKey  = "wird.settings"
	DayMarkerKey = "wird.lastRegeneratedDay"

	// Scheduler loop timings
	PollInterval          = 10 * time.Second
	CallbackRetryDelay    = 1 * time.Second
	EmptyLedgerRegenDelay = 2 * time.Second
	SettingsRegenDelay    = 100 * time.Millisecond
	MidnightRegenCron     = "0 0 * * *"

	// Planner limits
	ImmediateIntervalMaxMin = 15      // intervals at or below this start at the next boundary
	ProductiveWindowMin     = 16 * 60 // caps the number of repeats per day
	MaxRepeatsPerDay        = 1440
	MessageMaxRunes         = 100
	EveningDhikrTime        = "17:00"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "wird-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.wird"
	TrayExecutablePrefix   = "wird-tray"
)
