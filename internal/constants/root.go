package constants

import "time"

const (
	AppName            = "mealframe"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/mealframe/mealframe.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Stats window constants
	DefaultPeriodDays = 30
	MinPeriodDays     = 1
	MaxPeriodDays     = 365

	// Rate rendering
	RateFractionDigits = 3
	RateNoData         = "0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mealframe-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultServerHost       = "localhost"
	DefaultServerPort       = 8000
	ServerLockfileName      = "mealframe-server.lock"
	ServerShutdownTimeout   = 10 * time.Second
	ServerReadHeaderTimeout = 5 * time.Second
	APIPrefix               = "/api/v1"
)
