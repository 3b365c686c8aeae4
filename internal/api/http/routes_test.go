// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/condition"
	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/weather"
)

type fakeBackend struct {
	weatherErr error
	reverse    *geocode.GeoLocation

	lastName  string
	lastLimit int
	lastQuery string
}

func (f *fakeBackend) Weather(_ context.Context, lat, lon float64, name string) (*weather.CurrentWeather, error) {
	f.lastName = name
	if f.weatherErr != nil {
		return nil, f.weatherErr
	}
	if name == "" {
		name = "Berlin"
	}
	return &weather.CurrentWeather{
		LocationName: name,
		TemperatureC: 18,
		Condition:    condition.Clear,
		Hourly:       []weather.HourlySample{},
		Daily:        []weather.DailySample{},
	}, nil
}

func (f *fakeBackend) Search(_ context.Context, query string, limit int) []geocode.GeoLocation {
	f.lastQuery, f.lastLimit = query, limit
	if len(query) < geocode.MinQueryLength {
		return []geocode.GeoLocation{}
	}
	return []geocode.GeoLocation{{Name: "Paris", Lat: 48.8566, Lon: 2.3522, Country: "France"}}
}

func (f *fakeBackend) Reverse(context.Context, float64, float64) *geocode.GeoLocation {
	return f.reverse
}

func TestRegisterRoutes_weather(t *testing.T) {
	t.Run("weather is served as JSON", func(t *testing.T) {
		backend := &fakeBackend{}
		resp := doRequest(t, New(backend, testLogger()), "/api/v1/weather?lat=52.52&lon=13.405&name=Home")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		var data weather.CurrentWeather
		decodeBody(t, resp, &data)
		if data.LocationName != "Home" || data.TemperatureC != 18 {
			t.Errorf("unexpected weather data: %+v", data)
		}
		if data.Condition != condition.Clear {
			t.Errorf("expected condition clear, got %s", data.Condition)
		}
	})
	t.Run("zero coordinates are valid", func(t *testing.T) {
		resp := doRequest(t, New(&fakeBackend{}, testLogger()), "/api/v1/weather?lat=0&lon=0")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
	})
	t.Run("invalid queries are rejected", func(t *testing.T) {
		tests := []string{
			"/api/v1/weather",
			"/api/v1/weather?lat=52.52",
			"/api/v1/weather?lat=abc&lon=13.405",
			"/api/v1/weather?lat=91&lon=13.405",
			"/api/v1/weather?lat=52.52&lon=-181",
		}
		app := New(&fakeBackend{}, testLogger())
		for _, target := range tests {
			resp := doRequest(t, app, target)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status %d for %s, got %d", http.StatusBadRequest, target, resp.StatusCode)
			}
		}
	})
	t.Run("errors are mapped to status codes", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"configuration", fmt.Errorf("weatherapi: %w", apierr.ErrMissingAPIKey), http.StatusServiceUnavailable},
			{"provider", &apierr.ProviderError{Provider: "weatherapi", StatusCode: 403}, http.StatusBadGateway},
			{"data shape", apierr.DataShape("weatherapi", "current"), http.StatusBadGateway},
			{"network", fmt.Errorf("%w: connection reset", apierr.ErrNetwork), http.StatusGatewayTimeout},
			{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
			{"unknown", errors.New("boom"), http.StatusInternalServerError},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				resp := doRequest(t, New(&fakeBackend{weatherErr: tc.err}, testLogger()),
					"/api/v1/weather?lat=52.52&lon=13.405")
				if resp.StatusCode != tc.want {
					t.Errorf("expected status %d, got %d", tc.want, resp.StatusCode)
				}
				var body map[string]string
				decodeBody(t, resp, &body)
				if body["error"] == "" {
					t.Error("expected error message in body")
				}
			})
		}
	})
}

func TestRegisterRoutes_locations(t *testing.T) {
	t.Run("search passes query and limit", func(t *testing.T) {
		backend := &fakeBackend{}
		resp := doRequest(t, New(backend, testLogger()), "/api/v1/locations/search?q=Paris&limit=3")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		var results []geocode.GeoLocation
		decodeBody(t, resp, &results)
		if len(results) != 1 || results[0].Name != "Paris" {
			t.Errorf("unexpected results: %+v", results)
		}
		if backend.lastQuery != "Paris" || backend.lastLimit != 3 {
			t.Errorf("unexpected backend call: %q/%d", backend.lastQuery, backend.lastLimit)
		}
	})
	t.Run("short search yields an empty list", func(t *testing.T) {
		resp := doRequest(t, New(&fakeBackend{}, testLogger()), "/api/v1/locations/search?q=P")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != "[]" {
			t.Errorf("expected empty JSON list, got %s", body)
		}
	})
	t.Run("invalid limits are rejected", func(t *testing.T) {
		app := New(&fakeBackend{}, testLogger())
		for _, target := range []string{
			"/api/v1/locations/search?q=Paris&limit=abc",
			"/api/v1/locations/search?q=Paris&limit=-1",
			"/api/v1/locations/search?q=Paris&limit=101",
		} {
			resp := doRequest(t, app, target)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status %d for %s, got %d", http.StatusBadRequest, target, resp.StatusCode)
			}
		}
	})
	t.Run("reverse returns the location", func(t *testing.T) {
		backend := &fakeBackend{reverse: &geocode.GeoLocation{Name: "Berlin", Lat: 52.52, Lon: 13.405}}
		resp := doRequest(t, New(backend, testLogger()), "/api/v1/locations/reverse?lat=52.52&lon=13.405")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		var loc geocode.GeoLocation
		decodeBody(t, resp, &loc)
		if loc.Name != "Berlin" {
			t.Errorf("expected Berlin, got %s", loc.Name)
		}
	})
	t.Run("reverse without result is not found", func(t *testing.T) {
		resp := doRequest(t, New(&fakeBackend{}, testLogger()), "/api/v1/locations/reverse?lat=0&lon=0")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})
}

func TestRequestID(t *testing.T) {
	app := New(&fakeBackend{}, testLogger())
	t.Run("request ID is assigned", func(t *testing.T) {
		resp := doRequest(t, app, "/health")
		if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("expected UUID request ID, got %q", resp.Header.Get(RequestIDHeader))
		}
	})
	t.Run("caller request ID is kept", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Header.Get(RequestIDHeader) != id {
			t.Errorf("expected request ID %s, got %s", id, resp.Header.Get(RequestIDHeader))
		}
	})
	t.Run("invalid caller request ID is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Header.Get(RequestIDHeader) == "not-a-uuid" {
			t.Error("expected request ID to be replaced")
		}
	})
}

func doRequest(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %s", err)
	}
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelError, io.Discard)
}
