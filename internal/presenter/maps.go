// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/vorlif/spreak/localize"

	"github.com/climate-app/climate/internal/condition"
)

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// ConditionLabels maps each condition to its human readable label
var ConditionLabels = map[condition.Condition]localize.MsgID{
	condition.Sunny:        "Sunny",
	condition.Clear:        "Clear",
	condition.PartlyCloudy: "Partly cloudy",
	condition.Cloudy:       "Cloudy",
	condition.Rainy:        "Rainy",
	condition.Snowy:        "Snowy",
	condition.Stormy:       "Stormy",
	condition.Windy:        "Windy",
}

// ConditionIcons maps conditions to single emoji icons for day (true) and night (false)
var ConditionIcons = map[condition.Condition]map[bool]string{
	condition.Sunny:        {true: "☀️", false: "☀️"},
	condition.Clear:        {true: "🌙", false: "🌙"},
	condition.PartlyCloudy: {true: "⛅", false: "☁️"},
	condition.Cloudy:       {true: "☁️", false: "☁️"},
	condition.Rainy:        {true: "🌧️", false: "🌧️"},
	condition.Snowy:        {true: "🌨️", false: "🌨️"},
	condition.Stormy:       {true: "⛈️", false: "⛈️"},
	condition.Windy:        {true: "💨", false: "💨"},
}

// AirQualityLabels maps the US EPA index to its category
var AirQualityLabels = map[int]localize.MsgID{
	1: "Good",
	2: "Moderate",
	3: "Unhealthy for sensitive groups",
	4: "Unhealthy",
	5: "Very unhealthy",
	6: "Hazardous",
}

var i18nVars = map[string]localize.MsgID{
	"temp":            "Temperature",
	"feelslike":       "Feels like",
	"high":            "High",
	"low":             "Low",
	"humidity":        "Humidity",
	"wind":            "Wind",
	"uv":              "UV index",
	"visibility":      "Visibility",
	"aqi":             "Air quality",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"moonphase":       "Moonphase",
	"weatherdatafor":  "Weather data for",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}
