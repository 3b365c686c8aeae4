// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package httpapi exposes weather and location lookups as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/weather"
)

const (
	// RequestIDHeader carries the request ID in requests and responses
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "requestID"
)

var validate = validator.New()

// Backend is the set of operations the API serves.
type Backend interface {
	Weather(ctx context.Context, lat, lon float64, name string) (*weather.CurrentWeather, error)
	Search(ctx context.Context, query string, limit int) []geocode.GeoLocation
	Reverse(ctx context.Context, lat, lon float64) *geocode.GeoLocation
}

// New returns a fiber app with all routes registered.
func New(backend Backend, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "climate",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestID)
	app.Use(accessLog(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	RegisterRoutes(app, backend)

	return app
}

// RegisterRoutes wires the API handlers into the fiber app.
func RegisterRoutes(app *fiber.App, backend Backend) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		query, err := parseCoordinatesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		data, err := backend.Weather(c.UserContext(), *query.Lat, *query.Lon, query.Name)
		if err != nil {
			return err
		}
		return c.JSON(data)
	})

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		query, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(backend.Search(c.UserContext(), query.Query, query.Limit))
	})

	v1.Get("/locations/reverse", func(c *fiber.Ctx) error {
		query, err := parseCoordinatesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		loc := backend.Reverse(c.UserContext(), *query.Lat, *query.Lon)
		if loc == nil {
			return fiber.NewError(fiber.StatusNotFound, "no location found for coordinates")
		}
		return c.JSON(loc)
	})
}

// coordinatesQuery holds the query parameters identifying a point.
type coordinatesQuery struct {
	Lat  *float64 `validate:"required,gte=-90,lte=90"`
	Lon  *float64 `validate:"required,gte=-180,lte=180"`
	Name string   `validate:"max=100"`
}

func parseCoordinatesQuery(c *fiber.Ctx) (coordinatesQuery, error) {
	var q coordinatesQuery
	var err error

	if q.Lat, err = optionalFloat(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = optionalFloat(c, "lon"); err != nil {
		return q, err
	}
	q.Name = strings.TrimSpace(c.Query("name"))

	if err = validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// searchQuery holds the query parameters of a place search. Queries below the minimum
// length are not rejected, they yield an empty result.
type searchQuery struct {
	Query string `validate:"max=200"`
	Limit int    `validate:"gte=0,lte=100"`
}

func parseSearchQuery(c *fiber.Ctx) (searchQuery, error) {
	q := searchQuery{Query: c.Query("q")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid limit: %q", raw)
		}
		q.Limit = limit
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return &val, nil
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case apierr.IsConfiguration(err):
		return fiber.StatusServiceUnavailable
	case apierr.IsNetwork(err), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case apierr.IsProvider(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := StatusCode(err)
		id, _ := c.Locals(requestIDKey).(string)
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", "request_id", id, "path", c.Path(), "status", code, logger.Err(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"error":     err.Error(),
			"requestId": id,
		})
	}
}

// requestID reuses the request ID of the caller or assigns a new one.
func requestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals(requestIDKey, id)
	c.Set(RequestIDHeader, id)
	return c.Next()
}

func accessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = StatusCode(err)
		}
		id, _ := c.Locals(requestIDKey).(string)
		log.Debug("request served", "request_id", id, "method", c.Method(), "path", c.Path(),
			"status", status, "duration", time.Since(start).String())
		return err
	}
}
