package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Bounds policies accepted by the GEOSKETCH_BOUNDS setting.
const (
	BoundsExact  = "exact"
	BoundsLegacy = "legacy"
)

// Config holds the configuration settings for the sketcher.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Source: The data source type to read coordinates from (local, postgres).
// - ArchivePath: Path of the zipped CSV used by the local source.
// - Limit: Maximum number of records to load, -1 for no limit.
// - Width, Height: Default grid dimensions when none are given on the command line.
// - Bounds: Bounding box policy, exact or legacy.
// - Frame: Whether the printed grid is wrapped in a border.
// - MetricsFile: Optional path where metrics are written in the Prometheus text format.
// - Database: Configuration settings for the PostgreSQL source.
type Config struct {
	Env         string
	Source      string
	ArchivePath string
	Limit       int
	Width       int
	Height      int
	Bounds      string
	Frame       bool
	MetricsFile string
	Database    PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
	Table    string // Table holds the latitude and longitude columns.
}

// Load reads the configuration from an optional .env file and GEOSKETCH_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)

	// Environment variables: GEOSKETCH_DB_HOST -> db.host
	vpr.SetEnvPrefix("GEOSKETCH")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	limit, err := strconv.Atoi(vpr.GetString("limit"))
	if err != nil {
		return nil, errors.New("failed to parse limit from configuration, must be an integer")
	}

	width, err := strconv.Atoi(vpr.GetString("width"))
	if err != nil {
		return nil, errors.New("failed to parse width from configuration, must be an integer")
	}

	height, err := strconv.Atoi(vpr.GetString("height"))
	if err != nil {
		return nil, errors.New("failed to parse height from configuration, must be an integer")
	}

	frame, err := strconv.ParseBool(vpr.GetString("frame"))
	if err != nil {
		return nil, errors.New("failed to parse frame from configuration, must be a boolean")
	}

	cfg := &Config{
		Env:         vpr.GetString("env"),
		Source:      vpr.GetString("source"),
		ArchivePath: vpr.GetString("archive_path"),
		Limit:       limit,
		Width:       width,
		Height:      height,
		Bounds:      strings.ToLower(vpr.GetString("bounds")),
		Frame:       frame,
		MetricsFile: vpr.GetString("metrics_file"),
		Database: PostgresConfig{
			Host:     vpr.GetString("db.host"),
			Port:     vpr.GetString("db.port"),
			User:     vpr.GetString("db.user"),
			Password: vpr.GetString("db.password"),
			Name:     vpr.GetString("db.name"),
			Table:    vpr.GetString("db.table"),
		},
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Limit != -1 && c.Limit <= 0 {
		errs = append(errs, fmt.Sprintf("limit must be -1 or positive, got %d", c.Limit))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("grid dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Bounds != BoundsExact && c.Bounds != BoundsLegacy {
		errs = append(errs, fmt.Sprintf("bounds must be %q or %q, got %q", BoundsExact, BoundsLegacy, c.Bounds))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "production")
	vpr.SetDefault("source", "local")
	vpr.SetDefault("archive_path", "data/ukpostcodes.csv.zip")
	vpr.SetDefault("limit", 1000000)
	vpr.SetDefault("width", 120)
	vpr.SetDefault("height", 120)
	vpr.SetDefault("bounds", BoundsExact)
	vpr.SetDefault("frame", false)
	vpr.SetDefault("metrics_file", "")
	vpr.SetDefault("db.host", "localhost")
	vpr.SetDefault("db.port", "5432")
	vpr.SetDefault("db.user", "")
	vpr.SetDefault("db.password", "")
	vpr.SetDefault("db.name", "")
	vpr.SetDefault("db.table", "geo_locations")
}
