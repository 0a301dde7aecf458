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

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldSummary holds statistics of the CO₂ concentrations in a field.
type FieldSummary struct {
	Cells int

	MinCO2, MaxCO2, MeanCO2 float64 // ppm
	P95CO2                  float64 // 95th percentile [ppm]

	// Unhealthy is the number of cells with an air quality index
	// above 100.
	Unhealthy int
}

// SummarizeField calculates statistics of the CO₂ concentrations in
// cells. The summary of an empty field is all zeros.
func SummarizeField(cells []GridCell) FieldSummary {
	s := FieldSummary{Cells: len(cells)}
	if len(cells) == 0 {
		return s
	}
	co2 := make([]float64, len(cells))
	for i, c := range cells {
		co2[i] = c.CO2Level
		if c.AirQuality > 100 {
			s.Unhealthy++
		}
	}
	s.MinCO2 = floats.Min(co2)
	s.MaxCO2 = floats.Max(co2)
	s.MeanCO2 = stat.Mean(co2, nil)
	sort.Float64s(co2)
	s.P95CO2 = stat.Quantile(0.95, stat.Empirical, co2, nil)
	return s
}
