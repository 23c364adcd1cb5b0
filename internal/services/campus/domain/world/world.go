// Package world holds the campus environment: the time of day and the
// weather.
package world

import (
	"fmt"
	"strings"
	"time"
)

// Weather is the current weather tag.
type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherRainy  Weather = "rainy"
	WeatherSnowy  Weather = "snowy"
	WeatherCloudy Weather = "cloudy"
)

// Weathers returns every weather tag.
func Weathers() []Weather {
	return []Weather{WeatherSunny, WeatherRainy, WeatherSnowy, WeatherCloudy}
}

// ParseWeather resolves a stored weather tag.
func ParseWeather(value string) (Weather, bool) {
	for _, w := range Weathers() {
		if string(w) == value {
			return w, true
		}
	}
	return "", false
}

// Effect returns the energy and stress deltas the weather applies.
func (w Weather) Effect() (energy, stress int) {
	switch w {
	case WeatherRainy:
		return -5, 2
	case WeatherSnowy:
		return -10, 5
	default:
		return 0, 0
	}
}

// Clock is a 24-hour time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// StartOfDay is the time a new game begins.
var StartOfDay = Clock{Hour: 8}

// ParseClock parses "HH:MM".
func ParseClock(value string) (Clock, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return Clock{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// Advance moves the clock forward by hours, wrapping at midnight.
func (c Clock) Advance(hours int) Clock {
	hour := (c.Hour + hours) % 24
	if hour < 0 {
		hour += 24
	}
	return Clock{Hour: hour, Minute: c.Minute}
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Picker draws bounded random integers.
type Picker interface {
	Intn(n int) int
}

// RandomWeather picks a weather tag uniformly.
func RandomWeather(dice Picker) Weather {
	all := Weathers()
	return all[dice.Intn(len(all))]
}
