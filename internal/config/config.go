package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Institution InstitutionConfig `mapstructure:"institution"`
	Documents   DocumentsConfig   `mapstructure:"documents"`
	Audit       AuditConfig       `mapstructure:"audit"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// InstitutionConfig holds the letterhead identity printed on documents
type InstitutionConfig struct {
	Name       string `mapstructure:"name"`
	CentreName string `mapstructure:"centre_name"`
	Place      string `mapstructure:"place"`
}

// DocumentsConfig holds document generation configuration
type DocumentsConfig struct {
	OutputDir        string  `mapstructure:"output_dir"`
	OverheadPercent  float64 `mapstructure:"overhead_percent"`
	ReceiptSignatory string  `mapstructure:"receipt_signatory"`
}

// AuditConfig holds the periodic claim consistency job configuration
type AuditConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)

	viper.SetDefault("database.path", "data/events_portal.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("documents.output_dir", "generated_documents")
	viper.SetDefault("documents.overhead_percent", 30.0)
	viper.SetDefault("documents.receipt_signatory", "Head of the Department")

	viper.SetDefault("audit.enabled", true)
	viper.SetDefault("audit.interval", 6*time.Hour)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("institution.name", "INSTITUTION_NAME")
	viper.BindEnv("institution.centre_name", "CENTRE_NAME")
	viper.BindEnv("institution.place", "INSTITUTION_PLACE")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Institution.Name == "" {
		return fmt.Errorf("institution.name is required")
	}
	if c.Institution.CentreName == "" {
		return fmt.Errorf("institution.centre_name is required")
	}

	if c.Documents.OverheadPercent < 0 || c.Documents.OverheadPercent > 100 {
		return fmt.Errorf("documents.overhead_percent must be between 0 and 100")
	}

	if c.Audit.Enabled && c.Audit.Interval < time.Minute {
		return fmt.Errorf("audit.interval must be at least one minute")
	}

	return nil
}
