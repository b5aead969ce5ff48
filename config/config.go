package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Appointment calendar specifics
	Calendar       CalendarConfig
	GoogleCalendar GoogleCalendarConfig
	Holidays       HolidaysConfig
	RateLimit      RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// CalendarConfig drives the widget policy and the data source selection.
type CalendarConfig struct {
	Timezone          string
	StartWeekOnSunday bool
	DefaultView       string
	SearchLimit       int
	SearchOffset      int
	LastViewTTL       string

	// SourceKind selects the appointment backend: "http" or "google".
	SourceKind string
	// SourceURL is the JSON endpoint for the http source.
	SourceURL string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

type HolidaysConfig struct {
	Enabled      bool
	Country      string
	Language     string
	FederalState string
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Calendar
	cfg.Calendar.Timezone = viper.GetString("calendar.timezone")
	cfg.Calendar.StartWeekOnSunday = viper.GetBool("calendar.start_week_on_sunday")
	cfg.Calendar.DefaultView = viper.GetString("calendar.default_view")
	cfg.Calendar.SearchLimit = viper.GetInt("calendar.search_limit")
	cfg.Calendar.SearchOffset = viper.GetInt("calendar.search_offset")
	cfg.Calendar.LastViewTTL = viper.GetString("calendar.last_view_ttl")
	cfg.Calendar.SourceKind = viper.GetString("calendar.source_kind")
	cfg.Calendar.SourceURL = viper.GetString("calendar.source_url")
	if sourceURL := viper.GetString("calendar_source_url"); sourceURL != "" {
		cfg.Calendar.SourceURL = sourceURL
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Holidays
	cfg.Holidays.Enabled = viper.GetBool("holidays.enabled")
	cfg.Holidays.Country = viper.GetString("holidays.country")
	cfg.Holidays.Language = viper.GetString("holidays.language")
	cfg.Holidays.FederalState = viper.GetString("holidays.federal_state")

	// Rate limiting
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Calendar.SourceKind != "http" && cfg.Calendar.SourceKind != "google" {
		return fmt.Errorf("calendar.source_kind must be http or google, got %q", cfg.Calendar.SourceKind)
	}
	if cfg.Calendar.SourceKind == "http" && cfg.Calendar.SourceURL == "" {
		return fmt.Errorf("calendar.source_url is required for the http source")
	}
	if cfg.Calendar.SourceKind == "google" && cfg.GoogleCalendar.CredentialsPath == "" {
		return fmt.Errorf("google_calendar.credentials_path is required for the google source")
	}
	if cfg.Holidays.Enabled && cfg.Holidays.Country == "" {
		return fmt.Errorf("holidays.country is required when holidays are enabled")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("calendar.timezone", "Europe/Berlin")
	viper.SetDefault("calendar.start_week_on_sunday", false)
	viper.SetDefault("calendar.default_view", "month")
	viper.SetDefault("calendar.search_limit", 10)
	viper.SetDefault("calendar.search_offset", 0)
	viper.SetDefault("calendar.last_view_ttl", "720h")
	viper.SetDefault("calendar.source_kind", "http")

	viper.SetDefault("holidays.enabled", false)
	viper.SetDefault("holidays.language", "EN")

	viper.SetDefault("rate_limit.requests_per_min", 300)
}
