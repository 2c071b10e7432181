package constants

const (
	AppName            = "sportjournal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/sportjournal"
	DefaultStorePath   = "~/.config/sportjournal/sportjournal.db"
	DefaultConfigPath  = "~/.config/sportjournal/config.yaml"
	Version            = "v0.1.0"

	// LocalUserID is the participant id of the journal's owner in challenges.
	LocalUserID = "me"

	// EnvDBConnection holds a PostgreSQL connection string, including credentials.
	EnvDBConnection = "SPORTJOURNAL_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "sportjournal-"

	// Notify constants
	NotifierLockfileName   = "sportjournal-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.tlat87.sportjournal"
	TrayExecutablePrefix   = "sportjournal-tray"

	// Directories under the config dir
	LogDirName   = "logs"
	LogFileName  = "sportjournal.log"
	MediaDirName = "media"
)
