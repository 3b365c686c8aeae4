// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

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
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	endpoint string
	http     *chttp.Client
	lang     language.Tag
	logger   *logger.Logger
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Components Components `json:"components"`
	Formatted  string     `json:"formatted"`
	Geometry   Geometry   `json:"geometry"`
}

type Components struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	County      string `json:"county"`
	State       string `json:"state"`
	Town        string `json:"town"`
	Village     string `json:"village"`
}

// Geometry uses pointers so that absent coordinates can be told apart from 0,0.
type Geometry struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lng"`
}

func New(client *chttp.Client, log *logger.Logger, lang language.Tag, apikey string) *OpenCage {
	return &OpenCage{
		apikey:   apikey,
		endpoint: APIEndpoint,
		lang:     lang,
		http:     client,
		logger:   log,
	}
}

func (o *OpenCage) Name() string {
	return name
}

// Search performs a forward lookup. Results without both coordinates are dropped.
func (o *OpenCage) Search(ctx context.Context, query string, limit int) ([]geocode.GeoLocation, error) {
	results, err := o.lookup(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	locations := make([]geocode.GeoLocation, 0, len(results))
	for _, result := range results {
		if loc, ok := result.location(); ok {
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// Reverse returns the first result for the coordinates, or nil if there is none or it
// lacks coordinates.
func (o *OpenCage) Reverse(ctx context.Context, lat, lon float64) (*geocode.GeoLocation, error) {
	results, err := o.lookup(ctx, fmt.Sprintf("%f,%f", lat, lon), 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	loc, ok := results[0].location()
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (o *OpenCage) lookup(ctx context.Context, q string, limit int) ([]Result, error) {
	if err := apierr.CheckAPIKey(name, o.apikey); err != nil {
		return nil, err
	}

	var response Response
	query := url.Values{}
	query.Set("q", q)
	query.Set("key", o.apikey)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.lang.String())

	code, err := o.http.Get(ctx, o.endpoint, &response, query, nil)
	if code != 0 && code != http.StatusOK {
		switch code {
		case http.StatusUnauthorized:
			o.logger.Error("OpenCage rejected the API key", "status", code)
		case http.StatusPaymentRequired:
			o.logger.Error("OpenCage quota exceeded", "status", code)
		}
		return nil, &apierr.ProviderError{
			Provider:   name,
			StatusCode: code,
			Code:       response.Status.Code,
			Message:    response.Status.Message,
			Err:        err,
		}
	}
	if err != nil {
		if errors.Is(err, apierr.ErrNetwork) || code == 0 {
			return nil, fmt.Errorf("failed to retrieve locations from OpenCage API: %w", err)
		}
		return nil, &apierr.ProviderError{Provider: name, StatusCode: code, Err: errors.Join(apierr.ErrDataShape, err)}
	}
	if response.Results == nil {
		return nil, apierr.DataShape(name, "results")
	}

	return response.Results, nil
}

// location converts the result, reporting false if a coordinate is missing.
func (r Result) location() (geocode.GeoLocation, bool) {
	if r.Geometry.Lat == nil || r.Geometry.Lon == nil {
		return geocode.GeoLocation{}, false
	}
	return geocode.GeoLocation{
		Name:      r.displayName(),
		Lat:       *r.Geometry.Lat,
		Lon:       *r.Geometry.Lon,
		Country:   r.Components.Country,
		State:     r.Components.State,
		Formatted: r.Formatted,
	}, true
}

func (r Result) displayName() string {
	for _, candidate := range []string{
		r.Components.City,
		r.Components.Town,
		r.Components.Village,
		r.Components.County,
	} {
		if candidate != "" {
			return candidate
		}
	}
	first, _, _ := strings.Cut(r.Formatted, ",")
	return strings.TrimSpace(first)
}
