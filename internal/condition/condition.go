// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package condition classifies provider specific weather codes into a small closed set of
// semantic conditions used for icons and theming.
package condition

// Condition is a semantic weather condition.
type Condition string

const (
	Sunny        Condition = "sunny"
	Clear        Condition = "clear"
	PartlyCloudy Condition = "partly_cloudy"
	Cloudy       Condition = "cloudy"
	Rainy        Condition = "rainy"
	Snowy        Condition = "snowy"
	Stormy       Condition = "stormy"
	Windy        Condition = "windy"
)

// Fallback is returned for codes a Table does not know.
const Fallback = Cloudy

// WindThreshold is the wind speed in m/s above which a calm condition turns windy.
const WindThreshold = 10

// All lists every member of the closed condition set.
var All = []Condition{Sunny, Clear, PartlyCloudy, Cloudy, Rainy, Snowy, Stormy, Windy}

// Valid reports whether c is a member of the closed set.
func (c Condition) Valid() bool {
	switch c {
	case Sunny, Clear, PartlyCloudy, Cloudy, Rainy, Snowy, Stormy, Windy:
		return true
	default:
		return false
	}
}

func (c Condition) String() string {
	return string(c)
}

// Table maps the codes of one provider to conditions. The clear sky code is resolved
// against the day/night flag, every other code is day/night invariant.
type Table struct {
	name      string
	clearCode int
	codes     map[int]Condition
}

// Name returns the code system the table covers.
func (t *Table) Name() string {
	return t.name
}

// Classify returns the condition for code. It never fails: unknown codes yield Fallback.
func (t *Table) Classify(code int, isDay bool) Condition {
	if code == t.clearCode {
		if isDay {
			return Sunny
		}
		return Clear
	}
	if cond, ok := t.codes[code]; ok {
		return cond
	}
	return Fallback
}

// Codes returns the known codes of the table, including the clear sky code.
func (t *Table) Codes() []int {
	codes := make([]int, 0, len(t.codes)+1)
	codes = append(codes, t.clearCode)
	for code := range t.codes {
		if code != t.clearCode {
			codes = append(codes, code)
		}
	}
	return codes
}

// Classify classifies a WeatherAPI condition code.
func Classify(code int, isDay bool) Condition {
	return WeatherAPI.Classify(code, isDay)
}

// ApplyWindOverride turns c into Windy when the wind exceeds WindThreshold, unless the
// condition already carries precipitation or thunder.
func ApplyWindOverride(c Condition, windMS int) Condition {
	if windMS <= WindThreshold {
		return c
	}
	switch c {
	case Stormy, Rainy, Snowy:
		return c
	default:
		return Windy
	}
}
