package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/keyring"
	"github.com/tLat87/SportJournal/internal/storage"
)

// KeyringTarget as storage.target means "use the connection string in the OS keyring".
const KeyringTarget = "keyring"

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Backup   BackupConfig   `yaml:"backup"`
	Media    MediaConfig    `yaml:"media"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Notifier NotifierConfig `yaml:"notifier"`

	path string
}

type StorageConfig struct {
	// Target is a file path (.json or SQLite), a PostgreSQL URL without a
	// password, or "keyring".
	Target string `yaml:"target"`
}

type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

type BackupConfig struct {
	Automatic  bool `yaml:"automatic"`
	MaxBackups int  `yaml:"max_backups"`
}

type MediaConfig struct {
	Dir string `yaml:"dir"`
}

type MetricsConfig struct {
	// Textfile is where a node-exporter textfile is written after each command.
	Textfile string `yaml:"textfile"`
}

type NotifierConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backup:   BackupConfig{Automatic: true, MaxBackups: constants.MaxBackups},
		Notifier: NotifierConfig{Enabled: true},
		path:     ExpandPath(constants.DefaultConfigPath),
	}
}

// Load reads the YAML file at path. A .env file in the same directory is
// loaded into the environment first, then ${VAR} references are expanded.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)
	cfg := Default()
	cfg.path = path

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or nothing when unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func (c *Config) Validate() error {
	if c.Backup.MaxBackups < 0 {
		return fmt.Errorf("backup.max_backups must not be negative")
	}
	if c.Backup.MaxBackups == 0 {
		c.Backup.MaxBackups = constants.MaxBackups
	}
	if t := c.Storage.Target; t != "" && storage.IsPostgres(t) {
		if _, err := storage.ValidateConnString(t); err != nil {
			return fmt.Errorf("storage.target: %w", err)
		}
	}
	return nil
}

// Path is the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir is the directory holding the config file, logs and media.
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// MediaDir returns media.dir, or <config dir>/media when unset.
func (c *Config) MediaDir() string {
	if c.Media.Dir != "" {
		return ExpandPath(c.Media.Dir)
	}
	return filepath.Join(c.Dir(), constants.MediaDirName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SecretSource yields a stored connection string. keyring.Store is one.
type SecretSource interface {
	Get() (string, error)
}

// Target is a resolved storage target and where it came from.
type Target struct {
	Value  string
	Source string
}

// ResolveTarget picks the store in order: --store flag, SPORTJOURNAL_DB_CONNECTION,
// storage.target, the keyring, the default SQLite path. Flag and file values
// must not embed a PostgreSQL password; the environment and the keyring may.
func (c *Config) ResolveTarget(flag string, secrets SecretSource) (Target, error) {
	if flag != "" && flag != KeyringTarget {
		return checkedTarget(flag, "flag")
	}
	if flag == "" {
		if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
			return Target{Value: env, Source: "env"}, nil
		}
		if t := c.Storage.Target; t != "" && t != KeyringTarget {
			return checkedTarget(t, "config")
		}
	}

	// the keyring is only an error source when it was asked for by name
	explicit := flag == KeyringTarget || c.Storage.Target == KeyringTarget
	if secrets == nil {
		if explicit {
			return Target{}, keyring.ErrKeyringUnavailable
		}
	} else if connStr, err := secrets.Get(); err == nil {
		return Target{Value: connStr, Source: "keyring"}, nil
	} else if explicit {
		return Target{}, fmt.Errorf("reading connection string from keyring: %w", err)
	}

	return Target{Value: ExpandPath(constants.DefaultStorePath), Source: "default"}, nil
}

func checkedTarget(value, source string) (Target, error) {
	if storage.IsPostgres(value) {
		if _, err := storage.ValidateConnString(value); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return Target{}, fmt.Errorf("%w; store the full connection string with 'sportjournal keyring set' or in %s instead", err, constants.EnvDBConnection)
			}
			return Target{}, err
		}
		return Target{Value: value, Source: source}, nil
	}
	return Target{Value: ExpandPath(value), Source: source}, nil
}
