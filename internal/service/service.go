// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service wires configuration, providers and presentation into the operations the
// CLI and the API expose.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/climate-app/climate/internal/config"
	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/i18n"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/presenter"
	"github.com/climate-app/climate/internal/weather"
)

// ErrPlaceNotFound is returned when a place query yields no location
var ErrPlaceNotFound = errors.New("place not found")

type Service struct {
	config     *config.Config
	logger     *logger.Logger
	http       *http.Client
	now        func() time.Time
	output     io.Writer
	coder      geocode.Geocoder
	geocoder   *geocode.Client
	aggregator *weather.Aggregator
	presenter  *presenter.Presenter
}

type Option func(*Service)

// WithHTTPClient replaces the HTTP client shared by all providers.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.http = client
		}
	}
}

// WithOutput sets the writer watch mode prints to. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.output = w
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(conf *config.Config, log *logger.Logger, opts ...Option) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	service := &Service{
		config: conf,
		logger: log,
		now:    time.Now,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.http == nil {
		service.http = http.New(log, conf.HTTP.Timeout)
	}

	translator, err := i18n.New(conf.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create localizer: %w", err)
	}
	service.presenter, err = presenter.New(conf, translator)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	provider, err := service.selectWeatherProvider()
	if err != nil {
		return nil, err
	}
	service.aggregator, err = weather.NewAggregator(provider, log, weather.WithClock(service.now))
	if err != nil {
		return nil, fmt.Errorf("failed to create weather aggregator: %w", err)
	}

	service.coder, err = service.selectGeocodeProvider(translator.Tag)
	if err != nil {
		return nil, err
	}
	service.geocoder, err = geocode.NewClient(service.coder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding client: %w", err)
	}

	return service, nil
}

// Weather fetches normalized weather data for the given coordinates. A non-empty name
// replaces the provider's location name.
func (s *Service) Weather(ctx context.Context, lat, lon float64, name string) (*weather.CurrentWeather, error) {
	if !geocode.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("invalid coordinates: %f,%f", lat, lon)
	}
	return s.aggregator.FetchWeatherData(ctx, lat, lon, weather.WithLocationName(name))
}

// WeatherForPlace resolves place via the geocoder and fetches the weather of the first hit,
// named after it.
func (s *Service) WeatherForPlace(ctx context.Context, place string) (*weather.CurrentWeather,
	*geocode.GeoLocation, error,
) {
	results := s.geocoder.Search(ctx, place, 1)
	if len(results) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrPlaceNotFound, place)
	}
	loc := results[0]
	data, err := s.Weather(ctx, loc.Lat, loc.Lon, loc.Name)
	if err != nil {
		return nil, nil, err
	}
	return data, &loc, nil
}

// Search looks up places by name. A non-positive limit selects the configured default.
func (s *Service) Search(ctx context.Context, query string, limit int) []geocode.GeoLocation {
	if limit <= 0 {
		limit = s.config.Geocoder.SearchLimit
	}
	return s.geocoder.Search(ctx, query, limit)
}

// Reverse resolves coordinates to a place, or nil.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) *geocode.GeoLocation {
	return s.geocoder.ReverseGeocode(ctx, lat, lon)
}

// Render formats data with the configured text template.
func (s *Service) Render(data *weather.CurrentWeather, lat, lon float64) (string, error) {
	return s.presenter.Render(s.presenter.BuildContext(data, lat, lon, s.now()))
}
