// Package config handles loading, validation, and access to configuration
// values from a YAML file and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/logger"
)

// Default configuration values.
const (
	defaultAppName        = "warta"
	defaultAppEnv         = "development"
	defaultLogLevel       = "info"
	defaultLogEncoding    = "console"
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBName         = "warta"
	defaultDBSSLMode      = "disable"
	defaultDBMaxConns     = 25
	defaultDBMaxIdleConns = 5
	defaultDBConnLifetime = 5 * time.Minute
	defaultWindowDays     = 5
	defaultSourcesFile    = "sources.yml"
	defaultExtractTimeout = 5 * time.Minute
	defaultScheduleSpec   = "0 6 * * *"
)

// Config represents the application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_connections"`
	MaxIdleConns    int           `mapstructure:"max_idle_connections"`
	ConnMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
}

// CrawlerConfig holds crawl-cycle settings.
type CrawlerConfig struct {
	// WindowDays is the size of the default crawl window ending today.
	WindowDays  int    `mapstructure:"window_days"`
	SourcesFile string `mapstructure:"sources_file"`
	// RulesFile overrides the built-in classifier keyword rules when set.
	RulesFile string `mapstructure:"rules_file"`
}

// ExtractorConfig holds PDF extraction service settings.
type ExtractorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig holds the cron specs for scheduled crawl cycles.
type SchedulerConfig struct {
	Specs []string `mapstructure:"specs"`
}

// Load reads configuration from the given YAML file (optional) and the
// environment. A .env file in the working directory is honored when
// present.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WARTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", defaultAppName)
	v.SetDefault("app.env", defaultAppEnv)
	v.SetDefault("logger.level", defaultLogLevel)
	v.SetDefault("logger.encoding", defaultLogEncoding)
	v.SetDefault("logger.development", false)
	v.SetDefault("database.host", defaultDBHost)
	v.SetDefault("database.port", defaultDBPort)
	v.SetDefault("database.user", defaultDBUser)
	// Empty defaults register the keys so environment overrides apply.
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", defaultDBName)
	v.SetDefault("database.sslmode", defaultDBSSLMode)
	v.SetDefault("database.max_open_connections", defaultDBMaxConns)
	v.SetDefault("database.max_idle_connections", defaultDBMaxIdleConns)
	v.SetDefault("database.connection_max_lifetime", defaultDBConnLifetime)
	v.SetDefault("crawler.window_days", defaultWindowDays)
	v.SetDefault("crawler.sources_file", defaultSourcesFile)
	v.SetDefault("crawler.rules_file", "")
	v.SetDefault("extractor.base_url", "")
	v.SetDefault("extractor.timeout", defaultExtractTimeout)
	v.SetDefault("scheduler.specs", []string{defaultScheduleSpec})
}

// Validate checks the loaded configuration for impossible values.
func (c *Config) Validate() error {
	if c.Crawler.WindowDays <= 0 {
		return fmt.Errorf("crawler.window_days must be positive, got %d", c.Crawler.WindowDays)
	}
	if c.Crawler.SourcesFile == "" {
		return fmt.Errorf("crawler.sources_file must be set")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("database.port must be positive, got %d", c.Database.Port)
	}
	return nil
}

// LoggerOptions converts the logger section for logger.New.
func (c *Config) LoggerOptions() *logger.Config {
	return &logger.Config{
		Level:       c.Logger.Level,
		Encoding:    c.Logger.Encoding,
		Development: c.Logger.Development,
	}
}

// DatabaseOptions converts the database section for
// database.NewPostgresConnection.
func (c *Config) DatabaseOptions() *database.Config {
	return &database.Config{
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		DBName:          c.Database.DBName,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
	}
}

// DefaultWindowDays reports the configured crawl window size.
func (c *Config) DefaultWindowDays() int {
	return c.Crawler.WindowDays
}
