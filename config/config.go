// Package config loads the optional .env analytics credentials and the
// persistent user preference file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvMeasurementID = "GA4_MEASUREMENT_ID"
	EnvAPISecret     = "GA4_API_SECRET"
	EnvAppVersion    = "APP_VERSION"
	EnvDebug         = "DEBUG"
)

// DefaultAppVersion is reported when APP_VERSION is not set.
const DefaultAppVersion = "1.0.0"

// Config holds the environment-driven settings. Analytics stays disabled
// unless both GA4 values are present.
type Config struct {
	MeasurementID string
	APISecret     string
	AppVersion    string
	Debug         bool
}

// Load reads the .env file at envPath when it exists and builds the Config
// from the process environment. A missing .env file is not an error: it
// simply leaves analytics disabled.
func Load(envPath string) *Config {
	if envPath == "" {
		envPath = ".env"
	}
	// godotenv refuses to overwrite variables already in the environment,
	// so explicit exports win over the file.
	_ = godotenv.Load(envPath)

	c := &Config{
		MeasurementID: os.Getenv(EnvMeasurementID),
		APISecret:     os.Getenv(EnvAPISecret),
		AppVersion:    os.Getenv(EnvAppVersion),
		Debug:         strings.EqualFold(os.Getenv(EnvDebug), "true"),
	}
	if c.AppVersion == "" {
		c.AppVersion = DefaultAppVersion
	}
	return c
}

// AnalyticsEnabled reports whether both GA4 credentials are configured.
func (c *Config) AnalyticsEnabled() bool {
	return c.MeasurementID != "" && c.APISecret != ""
}

// Summary returns a loggable description of the configuration. The API
// secret is never included.
func (c *Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DarkCtrlKeeper configuration: version=%s debug=%v analytics=%v",
		c.AppVersion, c.Debug, c.AnalyticsEnabled())
	if c.AnalyticsEnabled() {
		fmt.Fprintf(&b, " measurement_id=%s api_secret=[configured]", c.MeasurementID)
	}
	return b.String()
}
