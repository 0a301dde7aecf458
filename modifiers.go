/*
Copyright © 2026 the UrbanCO2 authors.
This file is part of UrbanCO2.

UrbanCO2 is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

UrbanCO2 is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with UrbanCO2.  If not, see <http://www.gnu.org/licenses/>.
*/

package urbanco2

import "math"

// TimeOfDayModifier returns the factor by which emissions from a source in
// category c are scaled at the given hour of the day.
func TimeOfDayModifier(c SourceCategory, hour int) float64 {
	switch c {
	case Transportation:
		switch {
		case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19): // rush hours
			return 1.5
		case hour >= 22 || hour <= 5:
			return 0.3
		}
		return 1.0
	case Industrial:
		switch {
		case hour >= 8 && hour <= 18:
			return 1.2
		case hour >= 22 || hour <= 6:
			return 0.6
		}
		return 1.0
	case Residential:
		if (hour >= 6 && hour <= 8) || (hour >= 18 && hour <= 22) {
			return 1.3
		}
		return 0.8
	case Commercial:
		if hour >= 9 && hour <= 21 {
			return 1.1
		}
		return 0.5
	default:
		return 1.0
	}
}

// Limits of WeatherModifier.
const (
	minWeatherModifier = 0.5
	maxWeatherModifier = 1.5
)

// WeatherModifier returns the factor by which capture rates are scaled under
// the weather in cfg. Wind lowers capture efficiency, temperatures outside of
// 5–35 °C impair biological capture, and humidity above 50% helps it.
// The result is always within [0.5, 1.5].
func WeatherModifier(cfg SimulationConfig) float64 {
	m := 1.0
	m -= cfg.WindSpeed * 0.02
	if cfg.Temperature < 5 || cfg.Temperature > 35 {
		m -= 0.2
	}
	m += (cfg.Humidity - 50) * 0.002
	return math.Max(minWeatherModifier, math.Min(maxWeatherModifier, m))
}

// trafficModifier returns the traffic density scaling for sources in
// category c; only transportation depends on traffic.
func trafficModifier(c SourceCategory, cfg SimulationConfig) float64 {
	if c == Transportation {
		return cfg.TrafficDensity
	}
	return 1
}

// round rounds x to the nearest integer, with halves rounded up.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// roundTo rounds x to the given number of decimal places, with halves
// rounded up.
func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}
