// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import "time"

const (
	// WindowSize is the number of hourly samples in a window
	WindowSize = 12
	// sampleSpan is the period a single hourly sample covers
	sampleSpan = time.Hour
)

// BuildWindow concatenates the given days and returns up to WindowSize samples, starting
// one sample before the one covering now. The result never shares memory with the input.
func BuildWindow(recentDays [][]HourlySample, now time.Time) []HourlySample {
	var samples []HourlySample
	for _, day := range recentDays {
		samples = append(samples, day...)
	}
	if len(samples) == 0 {
		return []HourlySample{}
	}

	current := len(samples) - 1
	for i, sample := range samples {
		if sample.At.Add(sampleSpan).After(now) {
			current = i
			break
		}
	}

	start := max(0, current-1)
	end := min(len(samples), start+WindowSize)
	window := make([]HourlySample, end-start)
	copy(window, samples[start:end])
	return window
}
