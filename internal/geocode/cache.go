// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"math"
	"sync"
	"time"
)

// coordPrecision is the precision used to quantize coordinates (0.01 degrees ≈ 1.1 km)
const coordPrecision = 1e-2

type cacheKey struct {
	Provider string
	LatQ     int32
	LonQ     int32
}

type cacheEntry struct {
	Location *GeoLocation
	Expiry   time.Time
}

// CachedGeocoder memoizes reverse lookups of a Geocoder. Forward searches are passed
// through unchanged.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, query string, limit int) ([]GeoLocation, error) {
	return c.coder.Search(ctx, query, limit)
}

func (c *CachedGeocoder) Reverse(ctx context.Context, lat, lon float64) (*GeoLocation, error) {
	key := newKey(c.coder.Name(), lat, lon)

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && time.Now().Before(entry.Expiry) {
		c.mu.RUnlock()
		if entry.Location == nil {
			return nil, nil
		}
		loc := *entry.Location
		loc.CacheHit = true
		return &loc, nil
	}
	c.mu.RUnlock()

	loc, err := c.coder.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.ttlHit
	var cached *GeoLocation
	if loc == nil {
		ttl = c.ttlMiss
	} else {
		copied := *loc
		cached = &copied
	}
	c.cache[key] = cacheEntry{
		Location: cached,
		Expiry:   time.Now().Add(ttl),
	}

	return loc, nil
}

func quantizeCoord(val float64) int32 {
	return int32(math.Round(val / coordPrecision))
}

func newKey(provider string, lat, lon float64) cacheKey {
	return cacheKey{
		Provider: provider,
		LatQ:     quantizeCoord(lat),
		LonQ:     quantizeCoord(lon),
	}
}
