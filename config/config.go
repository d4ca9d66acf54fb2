package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the site backend.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Content   ContentConfig   `mapstructure:"content"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Listen    string `mapstructure:"listen"`
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ContentConfig locates the content files and controls reloading.
type ContentConfig struct {
	// DataDir holds posts.json, jobs.json and work.json.
	DataDir string `mapstructure:"data_dir"`
	// ChatRulesFile optionally overrides the built-in chat rule table.
	ChatRulesFile string `mapstructure:"chat_rules_file"`
	// ReloadCron is the fallback sweep schedule ("@hourly", 5-field cron, or
	// empty to disable). The fsnotify watcher usually reloads first.
	ReloadCron string `mapstructure:"reload_cron"`
	// WatchDisabled turns off the filesystem watcher (cron sweep only).
	WatchDisabled bool `mapstructure:"watch_disabled"`
	// DefaultPageSize applies when a list request carries no page_size.
	DefaultPageSize int `mapstructure:"default_page_size"`
	// MaxPageSize caps client-supplied page sizes.
	MaxPageSize int `mapstructure:"max_page_size"`
}

func (c ContentConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("content.data_dir is required")
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("content.default_page_size must be > 0")
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("content.max_page_size must be >= default_page_size")
	}
	return nil
}

// StorageConfig contains storage and cache settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains Postgres connection settings.
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN builds the connection string from whichever fields are set.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// LimitsConfig controls per-IP rate limits on the public write endpoints.
type LimitsConfig struct {
	ChatPerMinute    int           `mapstructure:"chat_per_minute"`
	ContactPerWindow int           `mapstructure:"contact_per_window"`
	ContactWindow    time.Duration `mapstructure:"contact_window"`
}

// Normalize applies defaults for unset limit values.
func (l LimitsConfig) Normalize() LimitsConfig {
	if l.ChatPerMinute <= 0 {
		l.ChatPerMinute = 30
	}
	if l.ContactPerWindow <= 0 {
		l.ContactPerWindow = 5
	}
	if l.ContactWindow <= 0 {
		l.ContactWindow = time.Hour
	}
	return l
}

// TelemetryConfig contains monitoring settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig loads config from file, with TRUSTSITE_* env overrides.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.listen", ":8080")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("content.data_dir", "content")
	viper.SetDefault("content.reload_cron", "@hourly")
	viper.SetDefault("content.default_page_size", 9)
	viper.SetDefault("content.max_page_size", 50)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("TRUSTSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	config.Limits = config.Limits.Normalize()

	if err := config.Content.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Postgres.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Redis.Validate(); err != nil {
		panic(err)
	}
	return &config
}
