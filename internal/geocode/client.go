// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/climate-app/climate/internal/logger"
)

const (
	// MinQueryLength is the minimum trimmed query length that reaches the provider
	MinQueryLength = 2
	// DefaultSearchLimit is used when a non-positive limit is requested
	DefaultSearchLimit = 5
)

// Client wraps a Geocoder and never fails: provider errors are logged and collapse to an
// empty result, so a geocoding outage never breaks location display.
type Client struct {
	coder  Geocoder
	logger *logger.Logger
}

// NewClient returns a Client for the given provider.
func NewClient(coder Geocoder, log *logger.Logger) (*Client, error) {
	if coder == nil {
		return nil, errors.New("geocoder is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Client{coder: coder, logger: log.With("geocoder", coder.Name())}, nil
}

// Search looks up places matching query. The result is never nil.
func (c *Client) Search(ctx context.Context, query string, limit int) []GeoLocation {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []GeoLocation{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results := swallow(c, "search", []GeoLocation{})(c.coder.Search(ctx, query, limit))
	if results == nil {
		return []GeoLocation{}
	}
	return results
}

// ReverseGeocode resolves coordinates to the best matching place, or nil.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) *GeoLocation {
	if !ValidCoordinates(lat, lon) {
		c.logger.Warn("refusing reverse lookup for invalid coordinates",
			"lat", lat, "lon", lon)
		return nil
	}
	return swallow[*GeoLocation](c, "reverse", nil)(c.coder.Reverse(ctx, lat, lon))
}

// swallow returns a function that logs a non-nil error and replaces the value with zero.
func swallow[T any](c *Client, op string, zero T) func(T, error) T {
	return func(val T, err error) T {
		if err != nil {
			c.logger.Error("geocoding lookup failed", "operation", op, logger.Err(err))
			return zero
		}
		return val
	}
}
