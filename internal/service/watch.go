// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"

	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/logger"
)

const watchJobName = "weather_update_job"

type watcher struct {
	service  *Service
	geocoder *geocode.Client
	lat, lon float64

	outputLock sync.Mutex
}

// Watch prints the rendered weather for the coordinates immediately and then on every
// configured update interval until ctx is canceled. Location names are resolved through a
// cached reverse geocoder.
func (s *Service) Watch(ctx context.Context, lat, lon float64) error {
	if !geocode.ValidCoordinates(lat, lon) {
		return fmt.Errorf("invalid coordinates: %f,%f", lat, lon)
	}
	cached := geocode.NewCachedGeocoder(s.coder, s.config.Intervals.GeocodeCacheTTL,
		s.config.Intervals.WeatherUpdate)
	client, err := geocode.NewClient(cached, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create geocoding client: %w", err)
	}
	watch := &watcher{service: s, geocoder: client, lat: lat, lon: lon}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.config.Intervals.WeatherUpdate),
		gocron.NewTask(watch.update),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName(watchJobName),
	)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to create %s: %w", watchJobName, err), scheduler.Shutdown())
	}
	scheduler.Start()
	s.logger.Info("watching weather", "interval", s.config.Intervals.WeatherUpdate.String(),
		"lat", lat, "lon", lon)

	<-ctx.Done()
	return scheduler.Shutdown()
}

// update fetches, renders and prints one weather update. Failures are logged and the next
// run tries again.
func (w *watcher) update(ctx context.Context) {
	var name string
	if loc := w.geocoder.ReverseGeocode(ctx, w.lat, w.lon); loc != nil {
		name = loc.Name
	}
	data, err := w.service.Weather(ctx, w.lat, w.lon, name)
	if err != nil {
		return
	}
	text, err := w.service.Render(data, w.lat, w.lon)
	if err != nil {
		w.service.logger.Error("failed to render weather data", logger.Err(err))
		return
	}

	w.outputLock.Lock()
	defer w.outputLock.Unlock()
	if _, err = fmt.Fprintln(w.service.output, text); err != nil {
		w.service.logger.Error("failed to write weather data", logger.Err(err))
	}
}
