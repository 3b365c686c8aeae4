// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package condition

// WeatherAPI covers the condition codes of weatherapi.com
// (https://www.weatherapi.com/docs/weather_conditions.json).
var WeatherAPI = &Table{
	name:      "weatherapi",
	clearCode: 1000,
	codes: map[int]Condition{
		1003: PartlyCloudy, // Partly cloudy
		1006: Cloudy,       // Cloudy
		1009: Cloudy,       // Overcast
		1030: Cloudy,       // Mist
		1063: Rainy,        // Patchy rain possible
		1066: Snowy,        // Patchy snow possible
		1069: Rainy,        // Patchy sleet possible
		1072: Rainy,        // Patchy freezing drizzle possible
		1087: Stormy,       // Thundery outbreaks possible
		1114: Snowy,        // Blowing snow
		1117: Snowy,        // Blizzard
		1135: Cloudy,       // Fog
		1147: Cloudy,       // Freezing fog
		1150: Rainy,        // Patchy light drizzle
		1153: Rainy,        // Light drizzle
		1168: Rainy,        // Freezing drizzle
		1171: Rainy,        // Heavy freezing drizzle
		1180: Rainy,        // Patchy light rain
		1183: Rainy,        // Light rain
		1186: Rainy,        // Moderate rain at times
		1189: Rainy,        // Moderate rain
		1192: Rainy,        // Heavy rain at times
		1195: Rainy,        // Heavy rain
		1198: Rainy,        // Light freezing rain
		1201: Rainy,        // Moderate or heavy freezing rain
		1204: Rainy,        // Light sleet
		1207: Rainy,        // Moderate or heavy sleet
		1210: Snowy,        // Patchy light snow
		1213: Snowy,        // Light snow
		1216: Snowy,        // Patchy moderate snow
		1219: Snowy,        // Moderate snow
		1222: Snowy,        // Patchy heavy snow
		1225: Snowy,        // Heavy snow
		1237: Snowy,        // Ice pellets
		1240: Rainy,        // Light rain shower
		1243: Rainy,        // Moderate or heavy rain shower
		1246: Rainy,        // Torrential rain shower
		1249: Rainy,        // Light sleet showers
		1252: Rainy,        // Moderate or heavy sleet showers
		1255: Snowy,        // Light snow showers
		1258: Snowy,        // Moderate or heavy snow showers
		1261: Snowy,        // Light showers of ice pellets
		1264: Snowy,        // Moderate or heavy showers of ice pellets
		1273: Stormy,       // Patchy light rain with thunder
		1276: Stormy,       // Moderate or heavy rain with thunder
		1279: Stormy,       // Patchy light snow with thunder
		1282: Stormy,       // Moderate or heavy snow with thunder
	},
}

// WMO covers the WMO 4677 subset used by Open-Meteo.
var WMO = &Table{
	name:      "wmo",
	clearCode: 0,
	codes: map[int]Condition{
		1:  PartlyCloudy, // Mainly clear
		2:  PartlyCloudy, // Partly cloudy
		3:  Cloudy,       // Overcast
		45: Cloudy,       // Fog
		48: Cloudy,       // Depositing rime fog
		51: Rainy,        // Light drizzle
		53: Rainy,        // Moderate drizzle
		55: Rainy,        // Dense drizzle
		56: Rainy,        // Light freezing drizzle
		57: Rainy,        // Dense freezing drizzle
		61: Rainy,        // Slight rain
		63: Rainy,        // Moderate rain
		65: Rainy,        // Heavy rain
		66: Rainy,        // Light freezing rain
		67: Rainy,        // Heavy freezing rain
		71: Snowy,        // Slight snow fall
		73: Snowy,        // Moderate snow fall
		75: Snowy,        // Heavy snow fall
		77: Snowy,        // Snow grains
		80: Rainy,        // Slight rain showers
		81: Rainy,        // Moderate rain showers
		82: Rainy,        // Violent rain showers
		85: Snowy,        // Slight snow showers
		86: Snowy,        // Heavy snow showers
		95: Stormy,       // Thunderstorm
		96: Stormy,       // Thunderstorm with slight hail
		99: Stormy,       // Thunderstorm with heavy hail
	},
}
