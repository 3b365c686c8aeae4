// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"math"
)

// GeoLocation is a resolved place.
type GeoLocation struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Country   string  `json:"country"`
	State     string  `json:"state,omitempty"`
	Formatted string  `json:"formatted"`

	CacheHit bool `json:"-"`
}

// SameCoordinates reports whether both locations share the same coordinates. Favorites
// are keyed by this equality.
func (g GeoLocation) SameCoordinates(other GeoLocation) bool {
	return g.Lat == other.Lat && g.Lon == other.Lon
}

// Geocoder is implemented by geocoding providers. Unlike Client, providers report every
// failure as an error.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]GeoLocation, error)
	Reverse(ctx context.Context, lat, lon float64) (*GeoLocation, error)
}

// ValidCoordinates checks if lat and lon are numbers within the EPSG:4326 bounds.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
