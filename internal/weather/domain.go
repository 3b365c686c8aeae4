// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"math"
	"time"

	"github.com/climate-app/climate/internal/condition"
)

// DefaultLocationName is used when neither the provider nor the caller names the location
const DefaultLocationName = "Current Location"

// CurrentWeather is the normalized result of one forecast fetch. It is built fresh for
// every fetch and not modified afterwards.
type CurrentWeather struct {
	LocationName    string              `json:"locationName"`
	TemperatureC    int                 `json:"temperatureC"`
	ConditionText   string              `json:"conditionText"`
	Condition       condition.Condition `json:"condition"`
	IsDay           bool                `json:"isDay"`
	HighC           int                 `json:"highC"`
	LowC            int                 `json:"lowC"`
	WindSpeedMS     int                 `json:"windSpeedMS"`
	HumidityPct     int                 `json:"humidityPct"`
	FeelsLikeC      int                 `json:"feelsLikeC"`
	UVIndex         int                 `json:"uvIndex"`
	VisibilityKm    float64             `json:"visibilityKm"`
	AirQualityIndex *int                `json:"airQualityIndex"`
	TimezoneID      string              `json:"timezoneId"`
	Hourly          []HourlySample      `json:"hourly"`
	Daily           []DailySample       `json:"daily"`
}

type HourlySample struct {
	At           time.Time           `json:"-"`
	Time         string              `json:"time"`
	Condition    condition.Condition `json:"condition"`
	IsDay        bool                `json:"isDay"`
	TemperatureC int                 `json:"temperatureC"`
}

type DailySample struct {
	Day       string              `json:"day"`
	Condition condition.Condition `json:"condition"`
	HighC     int                 `json:"highC"`
	LowC      int                 `json:"lowC"`
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(val float64) int {
	return int(math.Floor(val + 0.5))
}

// KPHToMS converts km/h to whole m/s.
func KPHToMS(kph float64) int {
	return Round(kph / 3.6)
}
