// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv = "CLIMATE"

	// Environment variables consulted when no API key is configured
	WeatherAPIKeyEnv = "WEATHERAPI_API_KEY"
	OpenCageKeyEnv   = "OPENCAGE_API_KEY"

	ProviderWeatherAPI = "weatherapi"
	ProviderOpenMeteo  = "open-meteo"
	ProviderOpenCage   = "opencage"
	ProviderNominatim  = "osm-nominatim"

	DefaultSearchLimit = 5
	DefaultHTTPTimeout = time.Second * 10

	DefaultTextTpl = "{{.Icon}} {{.Weather.LocationName}}: {{.Weather.TemperatureC}}°C, {{.Condition}}\n" +
		"{{loc \"feelslike\"}}: {{.Weather.FeelsLikeC}}°C • {{loc \"high\"}}: {{.Weather.HighC}}°C • " +
		"{{loc \"low\"}}: {{.Weather.LowC}}°C\n" +
		"{{loc \"wind\"}}: {{.Weather.WindSpeedMS}} m/s • {{loc \"humidity\"}}: {{.Weather.HumidityPct}}% • " +
		"{{loc \"uv\"}}: {{.Weather.UVIndex}}\n" +
		"{{loc \"visibility\"}}: {{.Weather.VisibilityKm}} km • {{loc \"aqi\"}}: {{.AirQuality}}\n" +
		"🌅 {{localizedTime .SunriseTime}} • 🌇 {{localizedTime .SunsetTime}} • " +
		"{{.MoonPhaseIcon}} {{loc .MoonPhase}}\n\n" +
		"{{range .Hourly}}{{pad .Time 6}}{{iconPad .Icon}}{{.TemperatureC}}°C\n{{end}}\n" +
		"{{range .Daily}}{{pad .Day 4}}{{iconPad .Icon}}{{.HighC}}°C / {{.LowC}}°C\n{{end}}"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Forecast struct {
		// Allowed values: weatherapi, open-meteo
		Provider string `fig:"provider" default:"weatherapi"`
		APIKey   string `fig:"apikey"`
		// Allowed values: 2 to 14
		Days int `fig:"days" default:"7"`
	} `fig:"forecast"`

	Geocoder struct {
		// Allowed values: opencage, osm-nominatim
		Provider string `fig:"provider" default:"opencage"`
		APIKey   string `fig:"apikey"`
		// Allowed values: 1 to 100, 0 selects DefaultSearchLimit
		SearchLimit int `fig:"searchlimit"`
	} `fig:"geocoder"`

	HTTP struct {
		// 0 selects DefaultHTTPTimeout
		Timeout time.Duration `fig:"timeout"`
	} `fig:"http"`

	Server struct {
		Listen string `fig:"listen" default:":8080"`
	} `fig:"server"`

	Intervals struct {
		WeatherUpdate   time.Duration `fig:"weather_update" default:"15m"`
		GeocodeCacheTTL time.Duration `fig:"geocode_cache_ttl" default:"1h"`
	} `fig:"intervals"`

	Templates struct {
		Text string `fig:"text"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the configured values and fills in derived defaults. Missing API keys
// are not an error here; the providers refuse to run without them.
func (c *Config) Validate() error {
	c.Forecast.Provider = strings.ToLower(strings.TrimSpace(c.Forecast.Provider))
	switch c.Forecast.Provider {
	case ProviderWeatherAPI, ProviderOpenMeteo:
	default:
		return fmt.Errorf("invalid forecast provider: %s", c.Forecast.Provider)
	}
	c.Geocoder.Provider = strings.ToLower(strings.TrimSpace(c.Geocoder.Provider))
	switch c.Geocoder.Provider {
	case ProviderOpenCage, ProviderNominatim:
	default:
		return fmt.Errorf("invalid geocoder provider: %s", c.Geocoder.Provider)
	}
	if c.Forecast.Days < 2 || c.Forecast.Days > 14 {
		return fmt.Errorf("invalid forecast days: %d", c.Forecast.Days)
	}
	if c.Geocoder.SearchLimit == 0 {
		c.Geocoder.SearchLimit = DefaultSearchLimit
	}
	if c.Geocoder.SearchLimit < 1 || c.Geocoder.SearchLimit > 100 {
		return fmt.Errorf("invalid geocoder search limit: %d", c.Geocoder.SearchLimit)
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("invalid HTTP timeout: %s", c.HTTP.Timeout)
	}
	if c.Intervals.WeatherUpdate < time.Minute {
		return fmt.Errorf("weather update interval must be at least 1m, got: %s", c.Intervals.WeatherUpdate)
	}
	if c.Forecast.APIKey == "" {
		c.Forecast.APIKey = os.Getenv(WeatherAPIKeyEnv)
	}
	if c.Geocoder.APIKey == "" {
		c.Geocoder.APIKey = os.Getenv(OpenCageKeyEnv)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	if idx := strings.Index(locale, "."); idx != -1 {
		locale = locale[:idx]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
