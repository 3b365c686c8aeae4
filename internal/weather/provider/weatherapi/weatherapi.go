// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weatherapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/condition"
	chttp "github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/weather"
)

const (
	name        = "weatherapi"
	APIEndpoint = "https://api.weatherapi.com/v1/forecast.json"

	// MinDays is the smallest forecast range that still fills an hourly window across midnight
	MinDays = 2
	// MaxDays is the largest forecast range the API serves
	MaxDays = 14
)

type WeatherAPI struct {
	apikey string
	days   int
	http   *chttp.Client
	log    *logger.Logger
}

type response struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		TzID    string  `json:"tz_id"`
	} `json:"location"`
	Current  *current `json:"current"`
	Forecast *struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type conditionInfo struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

type current struct {
	LastUpdatedEpoch int64         `json:"last_updated_epoch"`
	TempC            float64       `json:"temp_c"`
	IsDay            int           `json:"is_day"`
	Condition        conditionInfo `json:"condition"`
	WindKPH          float64       `json:"wind_kph"`
	Humidity         float64       `json:"humidity"`
	FeelsLikeC       float64       `json:"feelslike_c"`
	VisKM            float64       `json:"vis_km"`
	UV               float64       `json:"uv"`
	AirQuality       *struct {
		USEPAIndex *int `json:"us-epa-index"`
	} `json:"air_quality"`
}

type forecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MaxTempC  float64       `json:"maxtemp_c"`
		MinTempC  float64       `json:"mintemp_c"`
		Condition conditionInfo `json:"condition"`
	} `json:"day"`
	Hour []struct {
		TimeEpoch  int64         `json:"time_epoch"`
		TempC      float64       `json:"temp_c"`
		IsDay      int           `json:"is_day"`
		Condition  conditionInfo `json:"condition"`
		WindKPH    float64       `json:"wind_kph"`
		Humidity   float64       `json:"humidity"`
		FeelsLikeC float64       `json:"feelslike_c"`
		VisKM      float64       `json:"vis_km"`
		UV         float64       `json:"uv"`
	} `json:"hour"`
}

func New(http *chttp.Client, log *logger.Logger, apikey string, days int) (*WeatherAPI, error) {
	if http == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	days = min(max(days, MinDays), MaxDays)

	return &WeatherAPI{apikey: apikey, days: days, http: http, log: log}, nil
}

func (w *WeatherAPI) Name() string {
	return name
}

// Fetch retrieves current conditions and the forecast in a single request. A missing API
// key fails before any request is made.
func (w *WeatherAPI) Fetch(ctx context.Context, lat, lon float64) (*weather.Report, error) {
	if err := apierr.CheckAPIKey(name, w.apikey); err != nil {
		return nil, err
	}

	res := new(response)
	query := url.Values{}
	query.Set("key", w.apikey)
	query.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	query.Set("days", strconv.Itoa(w.days))
	query.Set("aqi", "yes")
	query.Set("alerts", "no")

	code, err := w.http.Get(ctx, APIEndpoint, res, query, nil)
	if code == 0 {
		return nil, fmt.Errorf("failed to retrieve weather data from WeatherAPI: %w", err)
	}
	if code != http.StatusOK || res.Error != nil {
		perr := &apierr.ProviderError{Provider: name, StatusCode: code, Err: err}
		if res.Error != nil {
			perr.Code = res.Error.Code
			perr.Message = res.Error.Message
		}
		w.log.Debug("WeatherAPI returned an error", "status", code, "code", perr.Code)
		return nil, perr
	}
	if err != nil {
		return nil, &apierr.ProviderError{Provider: name, StatusCode: code, Err: errors.Join(apierr.ErrDataShape, err)}
	}

	return w.report(res)
}

func (w *WeatherAPI) report(res *response) (*weather.Report, error) {
	if res.Current == nil {
		return nil, apierr.DataShape(name, "current")
	}
	if res.Forecast == nil || len(res.Forecast.ForecastDay) == 0 {
		return nil, apierr.DataShape(name, "forecast.forecastday")
	}

	loc, err := time.LoadLocation(res.Location.TzID)
	if err != nil {
		w.log.Warn("unknown time zone in response", "timezone", res.Location.TzID, logger.Err(err))
		loc = time.UTC
	}

	report := &weather.Report{
		GeneratedAt:  time.Unix(res.Current.LastUpdatedEpoch, 0),
		LocationName: res.Location.Name,
		TimezoneID:   res.Location.TzID,
		Codes:        condition.WeatherAPI,
		Current: weather.Instant{
			InstantTime:         time.Unix(res.Current.LastUpdatedEpoch, 0),
			Temperature:         res.Current.TempC,
			ApparentTemperature: res.Current.FeelsLikeC,
			WeatherCode:         res.Current.Condition.Code,
			ConditionText:       res.Current.Condition.Text,
			WindSpeed:           res.Current.WindKPH,
			RelativeHumidity:    res.Current.Humidity,
			UVIndex:             res.Current.UV,
			Visibility:          res.Current.VisKM,
			IsDay:               res.Current.IsDay == 1,
		},
		Days: make([]weather.Day, 0, len(res.Forecast.ForecastDay)),
	}
	if res.Current.AirQuality != nil {
		report.AirQualityIndex = res.Current.AirQuality.USEPAIndex
	}

	for _, fd := range res.Forecast.ForecastDay {
		date, err := time.ParseInLocation(time.DateOnly, fd.Date, loc)
		if err != nil {
			return nil, &apierr.ProviderError{Provider: name, StatusCode: http.StatusOK,
				Message: "invalid forecast date " + strconv.Quote(fd.Date), Err: apierr.ErrDataShape}
		}
		day := weather.Day{
			Date:           date,
			WeatherCode:    fd.Day.Condition.Code,
			ConditionText:  fd.Day.Condition.Text,
			MaxTemperature: fd.Day.MaxTempC,
			MinTemperature: fd.Day.MinTempC,
			Hours:          make([]weather.Instant, 0, len(fd.Hour)),
		}
		for _, h := range fd.Hour {
			day.Hours = append(day.Hours, weather.Instant{
				InstantTime:         time.Unix(h.TimeEpoch, 0),
				Temperature:         h.TempC,
				ApparentTemperature: h.FeelsLikeC,
				WeatherCode:         h.Condition.Code,
				ConditionText:       h.Condition.Text,
				WindSpeed:           h.WindKPH,
				RelativeHumidity:    h.Humidity,
				UVIndex:             h.UV,
				Visibility:          h.VisKM,
				IsDay:               h.IsDay == 1,
			})
		}
		report.Days = append(report.Days, day)
	}

	return report, nil
}
