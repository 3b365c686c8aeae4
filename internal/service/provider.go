// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/climate-app/climate/internal/config"
	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/geocode/provider/opencage"
	nominatim "github.com/climate-app/climate/internal/geocode/provider/osm-nominatim"
	"github.com/climate-app/climate/internal/weather"
	"github.com/climate-app/climate/internal/weather/provider/openmeteo"
	"github.com/climate-app/climate/internal/weather/provider/weatherapi"
)

func (s *Service) selectGeocodeProvider(lang language.Tag) (geocode.Geocoder, error) {
	switch strings.ToLower(s.config.Geocoder.Provider) {
	case config.ProviderOpenCage:
		return opencage.New(s.http, s.logger, lang, s.config.Geocoder.APIKey), nil
	case config.ProviderNominatim:
		return nominatim.New(s.http, s.logger, lang), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder: %s", s.config.Geocoder.Provider)
	}
}

func (s *Service) selectWeatherProvider() (provider weather.Provider, err error) {
	switch strings.ToLower(s.config.Forecast.Provider) {
	case config.ProviderWeatherAPI:
		provider, err = weatherapi.New(s.http, s.logger, s.config.Forecast.APIKey, s.config.Forecast.Days)
		if err != nil {
			return provider, fmt.Errorf("failed to create WeatherAPI weather provider: %w", err)
		}
	case config.ProviderOpenMeteo:
		provider, err = openmeteo.New(s.http, s.logger)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", s.config.Forecast.Provider)
	}
	return provider, nil
}
