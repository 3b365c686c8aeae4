// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/condition"
	"github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/testhelper"
	"github.com/climate-app/climate/internal/weather"
)

const (
	testLat = 50.95099552
	testLon = 6.929531592
)

var testStart = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

type fakeForecaster struct {
	forecast *omgo.Forecast
	err      error
	opts     *omgo.Options
}

func (f *fakeForecaster) Forecast(_ context.Context, _ omgo.Location, opts *omgo.Options) (*omgo.Forecast, error) {
	f.opts = opts
	return f.forecast, f.err
}

// testForecast returns two days of hourly data: clear nights, overcast mornings and a
// thunderstorm on the second afternoon.
func testForecast() *omgo.Forecast {
	forecast := &omgo.Forecast{HourlyMetrics: make(map[string][]float64)}
	for i := range 48 {
		at := testStart.Add(time.Duration(i) * time.Hour)
		hour := at.Hour()
		code, isDay := 0.0, 0.0
		if hour >= 8 && hour < 17 {
			isDay = 1
			code = 3
		}
		if i == 24+15 {
			code = 95
		}
		forecast.HourlyTimes = append(forecast.HourlyTimes, at)
		forecast.HourlyMetrics[metricTemperature] = append(forecast.HourlyMetrics[metricTemperature], float64(hour)/2-2)
		forecast.HourlyMetrics[metricApparent] = append(forecast.HourlyMetrics[metricApparent], float64(hour)/2-5)
		forecast.HourlyMetrics[metricWeatherCode] = append(forecast.HourlyMetrics[metricWeatherCode], code)
		forecast.HourlyMetrics[metricWindSpeed] = append(forecast.HourlyMetrics[metricWindSpeed], 18)
		forecast.HourlyMetrics[metricIsDay] = append(forecast.HourlyMetrics[metricIsDay], isDay)
		forecast.HourlyMetrics[metricHumidity] = append(forecast.HourlyMetrics[metricHumidity], 81)
		forecast.HourlyMetrics[metricUVIndex] = append(forecast.HourlyMetrics[metricUVIndex], 0.4)
		forecast.HourlyMetrics[metricVisibility] = append(forecast.HourlyMetrics[metricVisibility], 24140)
	}
	return forecast
}

func testProvider(fake *fakeForecaster, now time.Time) *OpenMeteo {
	return &OpenMeteo{
		client: fake,
		log:    logger.NewLogger(slog.LevelDebug, io.Discard),
		now:    func() time.Time { return now },
	}
}

func TestNew(t *testing.T) {
	t.Run("new provider succeeds", func(t *testing.T) {
		provider, err := New(http.New(testLogger(), 0), testLogger())
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, provider.Name())
		}
	})
	t.Run("new provider fails without logger", func(t *testing.T) {
		if _, err := New(http.New(testLogger(), 0), nil); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
	t.Run("new provider fails without http client", func(t *testing.T) {
		if _, err := New(nil, testLogger()); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
	t.Run("requests go through the shared http client", func(t *testing.T) {
		var agent string
		client := http.New(testLogger(), 0)
		spy := &testhelper.SpyRoundTripper{Fn: func(req *stdhttp.Request) (*stdhttp.Response, error) {
			agent = req.Header.Get("User-Agent")
			return &stdhttp.Response{
				StatusCode: 503,
				Status:     "503 Service Unavailable",
				Body:       io.NopCloser(strings.NewReader(`{"error":true,"reason":"maintenance"}`)),
				Header:     make(stdhttp.Header),
			}, nil
		}}
		client.Transport = spy
		provider, err := New(client, testLogger())
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		_, err = provider.Fetch(t.Context(), testLat, testLon)
		if !apierr.IsProvider(err) {
			t.Errorf("expected provider error, got: %v", err)
		}
		if spy.Calls() != 1 {
			t.Errorf("expected 1 request through the shared client, got %d", spy.Calls())
		}
		if agent != http.UserAgent {
			t.Errorf("expected User-Agent %q, got %q", http.UserAgent, agent)
		}
	})
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelDebug, io.Discard)
}

func TestOpenMeteo_Fetch(t *testing.T) {
	now := testStart.Add(9*time.Hour + 40*time.Minute)

	t.Run("hourly metrics are requested in UTC and metric units", func(t *testing.T) {
		fake := &fakeForecaster{forecast: testForecast()}
		if _, err := testProvider(fake, now).Fetch(t.Context(), testLat, testLon); err != nil {
			t.Fatalf("failed to fetch weather data: %s", err)
		}
		if fake.opts.Timezone != "UTC" {
			t.Errorf("expected UTC timezone, got %q", fake.opts.Timezone)
		}
		if fake.opts.WindspeedUnit != "kmh" {
			t.Errorf("expected km/h wind speed unit, got %q", fake.opts.WindspeedUnit)
		}
		if len(fake.opts.HourlyMetrics) != len(hourlyMetrics) {
			t.Errorf("expected %d hourly metrics, got %d", len(hourlyMetrics), len(fake.opts.HourlyMetrics))
		}
	})
	t.Run("current conditions come from the current hour", func(t *testing.T) {
		report, err := testProvider(&fakeForecaster{forecast: testForecast()}, now).Fetch(t.Context(), testLat, testLon)
		if err != nil {
			t.Fatal(err)
		}
		if !report.Current.InstantTime.Equal(testStart.Add(9 * time.Hour)) {
			t.Errorf("expected current instant at 09:00, got %s", report.Current.InstantTime)
		}
		if report.Current.ConditionText != "Overcast" {
			t.Errorf("expected condition text Overcast, got %q", report.Current.ConditionText)
		}
		if report.Current.Visibility != 24.14 {
			t.Errorf("expected visibility in km, got %f", report.Current.Visibility)
		}
		if report.Codes != condition.WMO {
			t.Error("expected WMO condition table")
		}
		if report.LocationName != "" {
			t.Errorf("expected no location name, got %q", report.LocationName)
		}
	})
	t.Run("days are derived from hourly samples", func(t *testing.T) {
		report, err := testProvider(&fakeForecaster{forecast: testForecast()}, now).Fetch(t.Context(), testLat, testLon)
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(report.Days))
		}
		if len(report.Days[0].Hours) != 24 {
			t.Errorf("expected 24 hours on the first day, got %d", len(report.Days[0].Hours))
		}
		if report.Days[0].MaxTemperature != 9.5 || report.Days[0].MinTemperature != -2 {
			t.Errorf("expected max/min 9.5/-2, got %f/%f", report.Days[0].MaxTemperature,
				report.Days[0].MinTemperature)
		}
		if report.Days[0].WeatherCode != 3 {
			t.Errorf("expected first day code 3, got %d", report.Days[0].WeatherCode)
		}
		if report.Days[1].WeatherCode != 95 {
			t.Errorf("expected most severe code 95 on the second day, got %d", report.Days[1].WeatherCode)
		}
	})
	t.Run("mismatching metric lengths are data shape errors", func(t *testing.T) {
		forecast := testForecast()
		forecast.HourlyMetrics[metricUVIndex] = forecast.HourlyMetrics[metricUVIndex][:3]
		_, err := testProvider(&fakeForecaster{forecast: forecast}, now).Fetch(t.Context(), testLat, testLon)
		if !errors.Is(err, apierr.ErrDataShape) {
			t.Errorf("expected ErrDataShape, got: %v", err)
		}
	})
	t.Run("empty forecasts are data shape errors", func(t *testing.T) {
		_, err := testProvider(&fakeForecaster{forecast: &omgo.Forecast{}}, now).Fetch(t.Context(), testLat, testLon)
		if !errors.Is(err, apierr.ErrDataShape) {
			t.Errorf("expected ErrDataShape, got: %v", err)
		}
	})
	t.Run("client errors are provider errors", func(t *testing.T) {
		fake := &fakeForecaster{err: errors.New("400 Bad Request")}
		_, err := testProvider(fake, now).Fetch(t.Context(), testLat, testLon)
		if !apierr.IsProvider(err) {
			t.Errorf("expected provider error, got: %v", err)
		}
	})
	t.Run("transport errors are network errors", func(t *testing.T) {
		fake := &fakeForecaster{err: &url.Error{Op: "Get", URL: "https://api.open-meteo.com", Err: errors.New("timeout")}}
		_, err := testProvider(fake, now).Fetch(t.Context(), testLat, testLon)
		if !errors.Is(err, apierr.ErrNetwork) {
			t.Errorf("expected network error, got: %v", err)
		}
	})
}

func TestOpenMeteo_aggregated(t *testing.T) {
	now := testStart.Add(23*time.Hour + 10*time.Minute)
	provider := testProvider(&fakeForecaster{forecast: testForecast()}, now)
	agg, err := weather.NewAggregator(provider, logger.NewLogger(slog.LevelDebug, io.Discard),
		weather.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}
	data, err := agg.FetchWeatherData(t.Context(), testLat, testLon)
	if err != nil {
		t.Fatalf("failed to fetch weather data: %s", err)
	}
	if data.LocationName != weather.DefaultLocationName {
		t.Errorf("expected fallback location name, got %q", data.LocationName)
	}
	if data.Condition != condition.Clear {
		t.Errorf("expected clear night, got %q", data.Condition)
	}
	if data.WindSpeedMS != 5 {
		t.Errorf("expected wind speed 5 m/s, got %d", data.WindSpeedMS)
	}
	if data.Hourly[0].Time != "10 PM" {
		t.Errorf("expected window to start at 10 PM, got %q", data.Hourly[0].Time)
	}
	if data.Daily[1].Condition != condition.Stormy {
		t.Errorf("expected stormy second day, got %q", data.Daily[1].Condition)
	}
}

func TestOpenMeteo_Fetch_integration(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	provider, err := New(http.New(logger.New(slog.LevelDebug), 0), logger.New(slog.LevelDebug))
	if err != nil {
		t.Fatal(err)
	}
	report, err := provider.Fetch(t.Context(), testLat, testLon)
	if err != nil {
		t.Fatalf("failed to get weather: %s", err)
	}
	if len(report.Days) < 2 {
		t.Errorf("expected at least 2 days, got %d", len(report.Days))
	}
}
