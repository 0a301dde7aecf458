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

// HourlyPoint is one hour of a daily emissions profile [kg/hour].
type HourlyPoint struct {
	Hour                    int
	Emissions, Capture, Net float64
}

// HourlyProjection spreads the totals in m over a day. Emissions are
// scaled by 1.4 during the morning and evening rush hours and by 0.4 at
// night, when capture is also scaled by 0.8.
//
// This is an approximation: it rescales totals that were already
// calculated for one hour rather than recalculating each source with its
// own time-of-day profile, so it does not agree with CalculateMetrics
// evaluated at other hours.
func HourlyProjection(m PerformanceMetrics) []HourlyPoint {
	o := make([]HourlyPoint, 24)
	for hour := range o {
		em, cm := 1.0, 1.0
		switch {
		case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
			em = 1.4
		case hour >= 22 || hour <= 5:
			em, cm = 0.4, 0.8
		}
		e := m.TotalEmissions * em
		c := m.TotalCapture * cm
		o[hour] = HourlyPoint{
			Hour:      hour,
			Emissions: round(e),
			Capture:   round(c),
			Net:       round(e - c),
		}
	}
	return o
}
