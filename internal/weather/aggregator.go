// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/condition"
	"github.com/climate-app/climate/internal/logger"
)

const (
	// MaxDailySamples is the number of forecast days exposed in CurrentWeather
	MaxDailySamples = 7
	// windowDays is the number of leading forecast days fed to BuildWindow
	windowDays = 2

	hourLabel = "3 PM"
	dayLabel  = "Mon"
)

// Aggregator turns provider reports into CurrentWeather values.
type Aggregator struct {
	provider Provider
	logger   *logger.Logger
	now      func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock replaces the wall clock used to anchor the hourly window.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// FetchOption configures a single FetchWeatherData call.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	locationName string
}

// WithLocationName overrides the location name reported by the provider, e.g. with the
// name of a search result or favorite.
func WithLocationName(name string) FetchOption {
	return func(o *fetchOptions) {
		o.locationName = strings.TrimSpace(name)
	}
}

func NewAggregator(provider Provider, log *logger.Logger, opts ...Option) (*Aggregator, error) {
	if provider == nil {
		return nil, errors.New("weather provider is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	agg := &Aggregator{
		provider: provider,
		logger:   log.With("provider", provider.Name()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(agg)
	}
	return agg, nil
}

// FetchWeatherData fetches the forecast for the coordinates and normalizes it. Provider
// failures are logged and returned; there is no retry and no fallback value.
func (a *Aggregator) FetchWeatherData(ctx context.Context, lat, lon float64, opts ...FetchOption) (*CurrentWeather, error) {
	options := new(fetchOptions)
	for _, opt := range opts {
		opt(options)
	}

	report, err := a.provider.Fetch(ctx, lat, lon)
	if err != nil {
		a.logger.Error("failed to fetch weather data", "lat", lat, "lon", lon, logger.Err(err))
		return nil, fmt.Errorf("failed to fetch weather data from %s: %w", a.provider.Name(), err)
	}
	if report == nil || len(report.Days) == 0 {
		err = apierr.DataShape(a.provider.Name(), "forecast days")
		a.logger.Error("forecast response is incomplete", logger.Err(err))
		return nil, err
	}

	return a.normalize(report, options), nil
}

func (a *Aggregator) normalize(report *Report, options *fetchOptions) *CurrentWeather {
	codes := report.Codes
	if codes == nil {
		codes = condition.WeatherAPI
	}
	loc := a.location(report.TimezoneID)
	current := report.Current
	wind := KPHToMS(current.WindSpeed)

	result := &CurrentWeather{
		LocationName:    report.LocationName,
		TemperatureC:    Round(current.Temperature),
		ConditionText:   current.ConditionText,
		Condition:       condition.ApplyWindOverride(codes.Classify(current.WeatherCode, current.IsDay), wind),
		IsDay:           current.IsDay,
		HighC:           Round(report.Days[0].MaxTemperature),
		LowC:            Round(report.Days[0].MinTemperature),
		WindSpeedMS:     wind,
		HumidityPct:     Round(current.RelativeHumidity),
		FeelsLikeC:      Round(current.ApparentTemperature),
		UVIndex:         Round(current.UVIndex),
		VisibilityKm:    current.Visibility,
		AirQualityIndex: report.AirQualityIndex,
		TimezoneID:      report.TimezoneID,
	}
	if result.LocationName == "" {
		result.LocationName = DefaultLocationName
	}
	if options.locationName != "" {
		result.LocationName = options.locationName
	}
	if result.ConditionText == "" {
		result.ConditionText = "N/A"
	}

	recent := make([][]HourlySample, 0, windowDays)
	for _, day := range report.Days[:min(windowDays, len(report.Days))] {
		hours := make([]HourlySample, 0, len(day.Hours))
		for _, hour := range day.Hours {
			hours = append(hours, HourlySample{
				At:           hour.InstantTime,
				Time:         hour.InstantTime.In(loc).Format(hourLabel),
				Condition:    codes.Classify(hour.WeatherCode, hour.IsDay),
				IsDay:        hour.IsDay,
				TemperatureC: Round(hour.Temperature),
			})
		}
		recent = append(recent, hours)
	}
	result.Hourly = BuildWindow(recent, a.now())

	result.Daily = make([]DailySample, 0, min(MaxDailySamples, len(report.Days)))
	for _, day := range report.Days[:min(MaxDailySamples, len(report.Days))] {
		result.Daily = append(result.Daily, DailySample{
			Day:       day.Date.Format(dayLabel),
			Condition: codes.Classify(day.WeatherCode, true),
			HighC:     Round(day.MaxTemperature),
			LowC:      Round(day.MinTemperature),
		})
	}

	return result
}

func (a *Aggregator) location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		a.logger.Warn("unknown time zone, falling back to UTC", "timezone", tz, logger.Err(err))
		return time.UTC
	}
	return loc
}
