// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/climate-app/climate/internal/condition"
)

// Provider is implemented by each forecast API backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (*Report, error)
}

// Report is the provider neutral forecast payload before classification and windowing.
// Temperatures are in Celsius, wind speeds in km/h.
type Report struct {
	GeneratedAt     time.Time
	LocationName    string
	TimezoneID      string
	Codes           *condition.Table
	Current         Instant
	Days            []Day
	AirQualityIndex *int
}

type Instant struct {
	InstantTime         time.Time
	Temperature         float64
	ApparentTemperature float64
	WeatherCode         int
	ConditionText       string
	WindSpeed           float64
	RelativeHumidity    float64
	UVIndex             float64
	Visibility          float64
	IsDay               bool
}

// Day is one forecast day. Hours are in chronological order.
type Day struct {
	Date           time.Time
	WeatherCode    int
	ConditionText  string
	MaxTemperature float64
	MinTemperature float64
	Hours          []Instant
}

// DayHour identifies the hour slot an instant falls into.
type DayHour int64

func NewDayHour(t time.Time) DayHour {
	return DayHour(t.Truncate(time.Hour).Unix())
}

func (t DayHour) Time() time.Time {
	return time.Unix(int64(t), 0)
}
