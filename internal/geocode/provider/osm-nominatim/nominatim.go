// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nominatim implements a keyless geocoder on top of the OpenStreetMap Nominatim API.
package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/geocode"
	chttp "github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/logger"
)

const (
	APISearchEndpoint  = "https://nominatim.openstreetmap.org/search"
	APIReverseEndpoint = "https://nominatim.openstreetmap.org/reverse"
	name               = "osm-nominatim"
)

type Nominatim struct {
	http   *chttp.Client
	lang   language.Tag
	logger *logger.Logger
}

// Place is a single search or reverse result. Reverse lookups without a match return a
// place that only carries Error.
type Place struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
	Error       string  `json:"error"`
}

type Address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

func New(client *chttp.Client, log *logger.Logger, lang language.Tag) *Nominatim {
	return &Nominatim{
		http:   client,
		lang:   lang,
		logger: log,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search performs a forward lookup. Results with unparsable coordinates are dropped.
func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]geocode.GeoLocation, error) {
	var places []Place
	params := n.query()
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	if err := n.get(ctx, APISearchEndpoint, &places, params); err != nil {
		return nil, err
	}

	locations := make([]geocode.GeoLocation, 0, len(places))
	for _, place := range places {
		if loc, ok := place.location(); ok {
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// Reverse returns the place at the coordinates, or nil if Nominatim has none.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (*geocode.GeoLocation, error) {
	var place Place
	params := n.query()
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))

	if err := n.get(ctx, APIReverseEndpoint, &place, params); err != nil {
		return nil, err
	}
	if place.Error != "" {
		n.logger.Debug("no place found for coordinates", "lat", lat, "lon", lon, "reason", place.Error)
		return nil, nil
	}
	loc, ok := place.location()
	if !ok {
		return nil, apierr.DataShape(name, "coordinates")
	}
	return &loc, nil
}

func (n *Nominatim) query() url.Values {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("accept-language", n.lang.String())
	return query
}

func (n *Nominatim) get(ctx context.Context, endpoint string, target any, query url.Values) error {
	code, err := n.http.Get(ctx, endpoint, target, query, nil)
	if code != 0 && code != http.StatusOK {
		return &apierr.ProviderError{
			Provider:   name,
			StatusCode: code,
			Message:    http.StatusText(code),
		}
	}
	if err != nil {
		if errors.Is(err, apierr.ErrNetwork) || code == 0 {
			return fmt.Errorf("failed to retrieve places from Nominatim API: %w", err)
		}
		return &apierr.ProviderError{Provider: name, StatusCode: code, Err: errors.Join(apierr.ErrDataShape, err)}
	}
	return nil
}

// location converts the place, reporting false if a coordinate does not parse.
func (p Place) location() (geocode.GeoLocation, bool) {
	lat, err := strconv.ParseFloat(p.APILat, 64)
	if err != nil {
		return geocode.GeoLocation{}, false
	}
	lon, err := strconv.ParseFloat(p.APILon, 64)
	if err != nil {
		return geocode.GeoLocation{}, false
	}
	return geocode.GeoLocation{
		Name:      p.displayName(),
		Lat:       lat,
		Lon:       lon,
		Country:   p.Address.Country,
		State:     p.Address.State,
		Formatted: p.DisplayName,
	}, true
}

func (p Place) displayName() string {
	for _, candidate := range []string{
		p.Address.City,
		p.Address.Town,
		p.Address.Village,
		p.Address.Municipality,
		p.Name,
	} {
		if candidate != "" {
			return candidate
		}
	}
	first, _, _ := strings.Cut(p.DisplayName, ",")
	return strings.TrimSpace(first)
}
