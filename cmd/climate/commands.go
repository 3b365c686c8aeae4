// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/climate-app/climate/internal/geocode"
	"github.com/climate-app/climate/internal/weather"
)

var (
	errNoLocation    = errors.New("either --place or both --lat and --lon are required")
	errNoCoordinates = errors.New("both --lat and --lon are required")
)

type coordinates struct {
	lat, lon float64
}

func addCoordinateFlags(cmd *cobra.Command, c *coordinates) {
	cmd.Flags().Float64Var(&c.lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&c.lon, "lon", 0, "longitude in decimal degrees")
}

func hasCoordinates(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon")
}

func (a *app) weatherCmd() *cobra.Command {
	var (
		coords  coordinates
		name    string
		place   string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show the current weather with hourly and daily forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data *weather.CurrentWeather
			var err error
			switch {
			case place != "":
				var loc *geocode.GeoLocation
				data, loc, err = a.service.WeatherForPlace(cmd.Context(), place)
				if err != nil {
					return fmt.Errorf("failed to fetch weather for place: %w", err)
				}
				coords = coordinates{lat: loc.Lat, lon: loc.Lon}
			case hasCoordinates(cmd):
				data, err = a.service.Weather(cmd.Context(), coords.lat, coords.lon, name)
				if err != nil {
					return fmt.Errorf("failed to fetch weather: %w", err)
				}
			default:
				return errNoLocation
			}

			if jsonOut {
				return writeJSON(cmd, data)
			}
			text, err := a.service.Render(data, coords.lat, coords.lon)
			if err != nil {
				return fmt.Errorf("failed to render weather: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	addCoordinateFlags(cmd, &coords)
	cmd.Flags().StringVar(&name, "name", "", "location name to display instead of the provider's")
	cmd.Flags().StringVarP(&place, "place", "p", "", "look up the weather by place name")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the weather data as JSON")
	cmd.MarkFlagsMutuallyExclusive("place", "lat")
	cmd.MarkFlagsMutuallyExclusive("place", "lon")
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search places by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.service.Search(cmd.Context(), args[0], limit)
			if jsonOut {
				return writeJSON(cmd, results)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, loc := range results {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", loc.Name, formatCoords(loc.Lat, loc.Lon), loc.Formatted)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the results as JSON")
	return cmd
}

func (a *app) reverseCmd() *cobra.Command {
	var (
		coords  coordinates
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Resolve coordinates to a place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !hasCoordinates(cmd) {
				return errNoCoordinates
			}
			loc := a.service.Reverse(cmd.Context(), coords.lat, coords.lon)
			if jsonOut {
				return writeJSON(cmd, loc)
			}
			if loc == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no location found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", loc.Formatted, formatCoords(loc.Lat, loc.Lon))
			return nil
		},
	}
	addCoordinateFlags(cmd, &coords)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the location as JSON")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var coords coordinates
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the weather periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !hasCoordinates(cmd) {
				return errNoCoordinates
			}
			if err := a.service.Watch(cmd.Context(), coords.lat, coords.lon); err != nil {
				return fmt.Errorf("failed to watch weather: %w", err)
			}
			return nil
		},
	}
	addCoordinateFlags(cmd, &coords)
	return cmd
}

func writeJSON(cmd *cobra.Command, data any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func formatCoords(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
}
