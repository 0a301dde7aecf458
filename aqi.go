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

// AQICategory is a health category of the air quality index.
type AQICategory int

// AQI categories, from best to worst.
const (
	Good AQICategory = iota
	Moderate
	UnhealthySensitive
	Unhealthy
)

func (c AQICategory) String() string {
	switch c {
	case Good:
		return "Good"
	case Moderate:
		return "Moderate"
	case UnhealthySensitive:
		return "Unhealthy for Sensitive Groups"
	default:
		return "Unhealthy"
	}
}

// ClassifyAQI returns the category of an air quality index value.
func ClassifyAQI(aqi float64) AQICategory {
	switch {
	case aqi <= 50:
		return Good
	case aqi <= 100:
		return Moderate
	case aqi <= 150:
		return UnhealthySensitive
	default:
		return Unhealthy
	}
}
