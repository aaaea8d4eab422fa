package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Registry RegistryConfig `mapstructure:"registry"`
	Document DocumentConfig `mapstructure:"document"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Rosters  RostersConfig  `mapstructure:"rosters"`
	Health   HealthConfig   `mapstructure:"health"`
	Log      LogConfig      `mapstructure:"log"`
}

// PathsConfig holds the inbox, the filing tree and the manifest locations
type PathsConfig struct {
	Inbox       string `mapstructure:"inbox"`
	FileTree    string `mapstructure:"file_tree"`
	ErrorFolder string `mapstructure:"error_folder"`
	Manifest    string `mapstructure:"manifest"`
}

// WatchConfig holds inbox-watching configuration
type WatchConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Debounce     time.Duration `mapstructure:"debounce"`
	InitialScan  bool          `mapstructure:"initial_scan"`
	// Settle is how long a lone file may wait for its partner before the
	// drop is rejected.
	Settle time.Duration `mapstructure:"settle"`
}

// RegistryConfig holds database-related configuration
type RegistryConfig struct {
	Driver           string        `mapstructure:"driver"`
	DSN              string        `mapstructure:"dsn"`
	MaxConns         int32         `mapstructure:"max_conns"`
	MinConns         int32         `mapstructure:"min_conns"`
	MaxConnLifetime  time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime  time.Duration `mapstructure:"max_conn_idle_time"`
	DialTimeout      time.Duration `mapstructure:"dial_timeout"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// DocumentConfig holds document-reading configuration
type DocumentConfig struct {
	Pdftotext   string `mapstructure:"pdftotext"`
	Antiword    string `mapstructure:"antiword"`
	MaxPages    int    `mapstructure:"max_pages"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// NotifyConfig holds desktop notification configuration
type NotifyConfig struct {
	Command string `mapstructure:"command"`
}

// RostersConfig points at an optional roster file replacing the embedded one
type RostersConfig struct {
	File string `mapstructure:"file"`
}

// HealthConfig holds the gRPC health endpoint address; empty disables it
type HealthConfig struct {
	GRPCAddr string `mapstructure:"grpc_addr"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const envPrefix = "RF"

// LoadConfig loads configuration from defaults, an optional config file and
// RF_* environment variables (RF_PATHS_INBOX overrides paths.inbox).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("report-filer")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/report-filer")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, NewAppError("CONFIG_ERROR", "read config file", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, NewAppError("CONFIG_ERROR", "unmarshal config", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.inbox", "./receiver_folder")
	v.SetDefault("paths.file_tree", "./data_base/file_tree")
	v.SetDefault("paths.error_folder", "./error_folder")
	v.SetDefault("paths.manifest", "./data_base/manifest.csv")

	v.SetDefault("watch.poll_interval", 5*time.Second)
	v.SetDefault("watch.debounce", 750*time.Millisecond)
	v.SetDefault("watch.initial_scan", true)
	v.SetDefault("watch.settle", 30*time.Second)

	v.SetDefault("registry.driver", "sqlite")
	v.SetDefault("registry.dsn", "./data_base/registry.db")
	v.SetDefault("registry.max_conns", 10)
	v.SetDefault("registry.min_conns", 1)
	v.SetDefault("registry.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("registry.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("registry.dial_timeout", 3*time.Second)
	v.SetDefault("registry.statement_timeout", time.Duration(0))

	v.SetDefault("document.pdftotext", "")
	v.SetDefault("document.antiword", "antiword")
	v.SetDefault("document.max_pages", 20)
	v.SetDefault("document.max_file_size", int64(50<<20))

	v.SetDefault("notify.command", "")
	v.SetDefault("rosters.file", "")
	v.SetDefault("health.grpc_addr", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("paths.inbox", c.Paths.Inbox, Required).
		Field("paths.file_tree", c.Paths.FileTree, Required).
		Field("paths.error_folder", c.Paths.ErrorFolder, Required).
		Field("paths.manifest", c.Paths.Manifest, Required).
		Field("registry.driver", c.Registry.Driver, OneOf("sqlite", "postgres")).
		Field("registry.dsn", c.Registry.DSN, Required).
		Field("log.format", c.Log.Format, OneOf("text", "json"))
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	if c.Paths.Inbox == c.Paths.ErrorFolder {
		return NewAppError("CONFIG_ERROR", "paths.inbox and paths.error_folder must differ", ErrInvalidInput)
	}
	if c.Watch.PollInterval <= 0 {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("watch.poll_interval must be positive, got %s", c.Watch.PollInterval), ErrInvalidInput)
	}
	if c.Watch.Settle < 0 {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("watch.settle must not be negative, got %s", c.Watch.Settle), ErrInvalidInput)
	}
	return nil
}
