// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"testing"
	"time"
)

var testDay = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

func testHours(day time.Time, count int) []HourlySample {
	hours := make([]HourlySample, count)
	for i := range hours {
		at := day.Add(time.Duration(i) * time.Hour)
		hours[i] = HourlySample{At: at, Time: at.Format("3 PM"), TemperatureC: i}
	}
	return hours
}

func TestBuildWindow(t *testing.T) {
	today := testHours(testDay, 24)
	tomorrow := testHours(testDay.AddDate(0, 0, 1), 24)

	t.Run("window crosses midnight", func(t *testing.T) {
		now := testDay.Add(23*time.Hour + 30*time.Minute)
		window := BuildWindow([][]HourlySample{today, tomorrow}, now)
		if len(window) != WindowSize {
			t.Fatalf("expected %d samples, got %d", WindowSize, len(window))
		}
		if !window[0].At.Equal(testDay.Add(22 * time.Hour)) {
			t.Errorf("expected window to start at 22:00, got %s", window[0].At)
		}
		for i := 1; i < len(window); i++ {
			if got := window[i].At.Sub(window[i-1].At); got != time.Hour {
				t.Errorf("expected hourly steps, got %s between %d and %d", got, i-1, i)
			}
		}
		if !window[2].At.Equal(testDay.AddDate(0, 0, 1)) {
			t.Errorf("expected third sample to be midnight, got %s", window[2].At)
		}
	})
	t.Run("window on the hour starts one hour before", func(t *testing.T) {
		now := testDay.Add(9 * time.Hour)
		window := BuildWindow([][]HourlySample{today, tomorrow}, now)
		if !window[0].At.Equal(testDay.Add(8 * time.Hour)) {
			t.Errorf("expected window to start at 08:00, got %s", window[0].At)
		}
	})
	t.Run("start index clamps to zero", func(t *testing.T) {
		window := BuildWindow([][]HourlySample{today, tomorrow}, testDay)
		if len(window) != WindowSize {
			t.Fatalf("expected %d samples, got %d", WindowSize, len(window))
		}
		if !window[0].At.Equal(testDay) {
			t.Errorf("expected window to start at first sample, got %s", window[0].At)
		}
	})
	t.Run("now before all samples starts at the first sample", func(t *testing.T) {
		window := BuildWindow([][]HourlySample{today}, testDay.Add(-48*time.Hour))
		if !window[0].At.Equal(testDay) {
			t.Errorf("expected window to start at first sample, got %s", window[0].At)
		}
	})
	t.Run("now past the last sample uses the last index", func(t *testing.T) {
		window := BuildWindow([][]HourlySample{today, tomorrow}, testDay.AddDate(0, 0, 5))
		if len(window) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(window))
		}
		if !window[1].At.Equal(tomorrow[23].At) {
			t.Errorf("expected window to end with the last sample, got %s", window[1].At)
		}
	})
	t.Run("short input is truncated", func(t *testing.T) {
		window := BuildWindow([][]HourlySample{today[:5]}, testDay.Add(2*time.Hour))
		if len(window) != 4 {
			t.Errorf("expected 4 samples, got %d", len(window))
		}
	})
	t.Run("empty input yields an empty window", func(t *testing.T) {
		window := BuildWindow(nil, testDay)
		if window == nil || len(window) != 0 {
			t.Errorf("expected empty window, got %v", window)
		}
		window = BuildWindow([][]HourlySample{{}, {}}, testDay)
		if len(window) != 0 {
			t.Errorf("expected empty window, got %v", window)
		}
	})
	t.Run("window does not alias its input", func(t *testing.T) {
		input := testHours(testDay, 24)
		window := BuildWindow([][]HourlySample{input}, testDay.Add(3*time.Hour))
		window[0].TemperatureC = -100
		if input[2].TemperatureC == -100 {
			t.Error("expected window to be a copy of the input")
		}
	})
	t.Run("more than two days are accepted", func(t *testing.T) {
		third := testHours(testDay.AddDate(0, 0, 2), 24)
		now := testDay.AddDate(0, 0, 1).Add(23 * time.Hour)
		window := BuildWindow([][]HourlySample{today, tomorrow, third}, now)
		if len(window) != WindowSize {
			t.Fatalf("expected %d samples, got %d", WindowSize, len(window))
		}
		if !window[0].At.Equal(now.Add(-time.Hour)) {
			t.Errorf("expected window to start at %s, got %s", now.Add(-time.Hour), window[0].At)
		}
	})
}
