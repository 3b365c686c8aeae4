// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns normalized weather data into localized, human readable text.
package presenter

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/climate-app/climate/internal/condition"
	"github.com/climate-app/climate/internal/config"
	"github.com/climate-app/climate/internal/i18n"
	"github.com/climate-app/climate/internal/weather"
)

// HourView wraps an hourly sample with presentation-related fields.
type HourView struct {
	weather.HourlySample

	Icon  string
	Label string
}

// DayView wraps a daily sample with presentation-related fields.
type DayView struct {
	weather.DailySample

	Icon  string
	Label string
}

type TemplateContext struct {
	Weather   *weather.CurrentWeather
	Latitude  float64
	Longitude float64

	UpdateTime    time.Time
	Icon          string
	Condition     string
	AirQuality    string
	SunriseTime   time.Time
	SunsetTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string

	Hourly []HourView
	Daily  []DayView
}

type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	text      *template.Template
}

func New(conf *config.Config, translator *i18n.Translator) (*Presenter, error) {
	collection := humanize.MustNew(humanize.WithLocale(de.New()))

	presenter := &Presenter{
		localizer: translator.Localizer,
		humanizer: collection.CreateHumanizer(translator.Tag),
	}
	tpl, err := template.New("text").Funcs(presenter.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	presenter.text = tpl

	return presenter, nil
}

// BuildContext assembles the template context for data fetched for the given coordinates.
// Sun and moon data are computed for the local date of at.
func (p *Presenter) BuildContext(data *weather.CurrentWeather, lat, lon float64, at time.Time) TemplateContext {
	loc, err := time.LoadLocation(data.TimezoneID)
	if err != nil || data.TimezoneID == "" {
		loc = time.UTC
	}
	local := at.In(loc)
	rise, set := sunrise.SunriseSunset(lat, lon, local.Year(), local.Month(), local.Day())
	phase := moonphase.New(at).PhaseName()

	ctx := TemplateContext{
		Weather:       data,
		Latitude:      lat,
		Longitude:     lon,
		UpdateTime:    at,
		Icon:          Icon(data.Condition, data.IsDay),
		Condition:     p.ConditionLabel(data.Condition),
		AirQuality:    p.AirQuality(data.AirQualityIndex),
		SunriseTime:   rise.In(loc),
		SunsetTime:    set.In(loc),
		MoonPhase:     phase,
		MoonPhaseIcon: MoonPhaseIcon[phase],
		Hourly:        make([]HourView, 0, len(data.Hourly)),
		Daily:         make([]DayView, 0, len(data.Daily)),
	}
	for _, hour := range data.Hourly {
		ctx.Hourly = append(ctx.Hourly, HourView{
			HourlySample: hour,
			Icon:         Icon(hour.Condition, hour.IsDay),
			Label:        p.ConditionLabel(hour.Condition),
		})
	}
	for _, day := range data.Daily {
		ctx.Daily = append(ctx.Daily, DayView{
			DailySample: day,
			Icon:        Icon(day.Condition, true),
			Label:       p.ConditionLabel(day.Condition),
		})
	}
	return ctx
}

// Render executes the configured text template.
func (p *Presenter) Render(ctx TemplateContext) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := p.text.Execute(buf, ctx); err != nil {
		return "", fmt.Errorf("failed to render text template: %w", err)
	}
	return buf.String(), nil
}

// ConditionLabel returns the localized label of a condition.
func (p *Presenter) ConditionLabel(cond condition.Condition) string {
	msg, ok := ConditionLabels[cond]
	if !ok {
		msg = ConditionLabels[condition.Fallback]
	}
	return p.localizer.Get(msg)
}

// AirQuality returns the localized US EPA category for aqi, or N/A when the index is
// missing or outside the 1 to 6 scale.
func (p *Presenter) AirQuality(aqi *int) string {
	if aqi == nil {
		return p.localizer.Get("N/A")
	}
	msg, ok := AirQualityLabels[*aqi]
	if !ok {
		return p.localizer.Get("N/A")
	}
	return p.localizer.Get(msg)
}

// Icon returns the emoji for a condition.
func Icon(cond condition.Condition, isDay bool) string {
	icons, ok := ConditionIcons[cond]
	if !ok {
		icons = ConditionIcons[condition.Fallback]
	}
	return icons[isDay]
}
