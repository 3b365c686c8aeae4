// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/condition"
	chttp "github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/weather"
)

const name = "open-meteo"

const (
	metricTemperature = "temperature_2m"
	metricApparent    = "apparent_temperature"
	metricWeatherCode = "weather_code"
	metricWindSpeed   = "wind_speed_10m"
	metricIsDay       = "is_day"
	metricHumidity    = "relative_humidity_2m"
	metricUVIndex     = "uv_index"
	metricVisibility  = "visibility"
)

var hourlyMetrics = []string{
	metricTemperature, metricApparent, metricWeatherCode, metricWindSpeed,
	metricIsDay, metricHumidity, metricUVIndex, metricVisibility,
}

// forecaster is the part of the omgo client the provider uses.
type forecaster interface {
	Forecast(ctx context.Context, loc omgo.Location, opts *omgo.Options) (*omgo.Forecast, error)
}

type OpenMeteo struct {
	client forecaster
	log    *logger.Logger
	now    func() time.Time
}

// New returns an Open-Meteo provider that sends its requests through the shared HTTP
// client, so the configured timeout and User-Agent apply.
func New(http *chttp.Client, log *logger.Logger) (*OpenMeteo, error) {
	if http == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	client.Client = http.Client
	client.UserAgent = chttp.UserAgent

	return &OpenMeteo{client: client, log: log, now: time.Now}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Fetch retrieves the hourly forecast in UTC. Current conditions are taken from the
// sample covering now and days are derived from the hourly samples.
func (o *OpenMeteo) Fetch(ctx context.Context, lat, lon float64) (*weather.Report, error) {
	location, err := omgo.NewLocation(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinates for Open-Meteo: %w", err)
	}
	opts := &omgo.Options{
		Timezone:          "UTC",
		TemperatureUnit:   "celsius",
		WindspeedUnit:     "kmh",
		PrecipitationUnit: "mm",
		HourlyMetrics:     hourlyMetrics,
	}

	forecast, err := o.client.Forecast(ctx, location, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, err
		}
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("failed to retrieve weather data from Open-Meteo: %w: %w", apierr.ErrNetwork, err)
		}
		return nil, &apierr.ProviderError{Provider: name, Err: err}
	}
	if forecast == nil || len(forecast.HourlyTimes) == 0 {
		return nil, apierr.DataShape(name, "hourly.time")
	}
	for _, metric := range hourlyMetrics {
		if len(forecast.HourlyMetrics[metric]) != len(forecast.HourlyTimes) {
			return nil, apierr.DataShape(name, "hourly."+metric)
		}
	}

	hours := make([]weather.Instant, len(forecast.HourlyTimes))
	for i, at := range forecast.HourlyTimes {
		hours[i] = instant(forecast.HourlyMetrics, i, at.UTC())
	}

	report := &weather.Report{
		GeneratedAt: o.now(),
		TimezoneID:  "UTC",
		Codes:       condition.WMO,
		Current:     hours[currentIndex(hours, o.now())],
		Days:        groupDays(hours),
	}
	return report, nil
}

func instant(metrics map[string][]float64, i int, at time.Time) weather.Instant {
	code := int(metrics[metricWeatherCode][i])
	return weather.Instant{
		InstantTime:         at,
		Temperature:         metrics[metricTemperature][i],
		ApparentTemperature: metrics[metricApparent][i],
		WeatherCode:         code,
		ConditionText:       wmoDescriptions[code],
		WindSpeed:           metrics[metricWindSpeed][i],
		RelativeHumidity:    metrics[metricHumidity][i],
		UVIndex:             metrics[metricUVIndex][i],
		Visibility:          metrics[metricVisibility][i] / 1000,
		IsDay:               metrics[metricIsDay][i] == 1,
	}
}

// currentIndex returns the index of the sample whose hour slot contains now.
func currentIndex(hours []weather.Instant, now time.Time) int {
	slot := weather.NewDayHour(now)
	for i, hour := range hours {
		if weather.NewDayHour(hour.InstantTime) >= slot {
			return i
		}
	}
	return len(hours) - 1
}

// groupDays splits chronological hours into calendar days. The daily code is the most
// severe code of the day, matching Open-Meteo's own daily weather_code.
func groupDays(hours []weather.Instant) []weather.Day {
	var days []weather.Day
	for _, hour := range hours {
		date := time.Date(hour.InstantTime.Year(), hour.InstantTime.Month(), hour.InstantTime.Day(),
			0, 0, 0, 0, time.UTC)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			days = append(days, weather.Day{
				Date:           date,
				WeatherCode:    hour.WeatherCode,
				MaxTemperature: hour.Temperature,
				MinTemperature: hour.Temperature,
			})
		}
		day := &days[len(days)-1]
		day.Hours = append(day.Hours, hour)
		day.MaxTemperature = max(day.MaxTemperature, hour.Temperature)
		day.MinTemperature = min(day.MinTemperature, hour.Temperature)
		day.WeatherCode = max(day.WeatherCode, hour.WeatherCode)
	}
	for i := range days {
		days[i].ConditionText = wmoDescriptions[days[i].WeatherCode]
	}
	return days
}
