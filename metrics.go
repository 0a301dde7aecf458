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

// Air quality index scaling for the aggregate metrics.
const (
	baseAQI     = 150. // AQI with no capture
	minAQI      = 50.  // AQI floor
	aqiPerPoint = 1.5  // AQI improvement per percent of emissions captured
)

// TotalEmissions returns the sum of the emissions from the active sources
// [kg/hour], after applying the time-of-day profile of each source category
// and, for transportation, the traffic density.
func TotalEmissions(sources []EmissionSource, cfg SimulationConfig) float64 {
	var total float64
	for _, s := range sources {
		if !s.Active {
			continue
		}
		total += s.EmissionRate * TimeOfDayModifier(s.Category, cfg.TimeOfDay) *
			trafficModifier(s.Category, cfg)
	}
	return total
}

// TotalCapture returns the sum of the capture by the active interventions
// [kg/hour] after adjusting for weather.
func TotalCapture(interventions []CaptureIntervention, cfg SimulationConfig) float64 {
	var total float64
	for _, iv := range interventions {
		if !iv.Active {
			continue
		}
		total += iv.CaptureRate * WeatherModifier(cfg)
	}
	return total
}

// CalculateMetrics calculates the city-wide performance metrics for the
// given sources, interventions, and conditions. All fields are rounded to
// the nearest integer. A zero capture total gives a cost-effectiveness of
// zero and a zero emissions total gives no AQI improvement.
func CalculateMetrics(sources []EmissionSource, interventions []CaptureIntervention, cfg SimulationConfig) (PerformanceMetrics, error) {
	if err := validateInputs(sources, interventions, cfg); err != nil {
		return PerformanceMetrics{}, err
	}
	emissions := TotalEmissions(sources, cfg)
	capture := TotalCapture(interventions, cfg)
	net := math.Max(0, emissions-capture)

	var installCost float64
	var count int
	for _, iv := range interventions {
		if iv.Active {
			installCost += iv.InstallCost
			count++
		}
	}

	var costEffectiveness float64
	if capture > 0 {
		costEffectiveness = installCost / capture
	}

	var reduction float64 // percent
	if emissions > 0 {
		reduction = 100 * capture / emissions
	}
	aqi := math.Max(minAQI, baseAQI-reduction*aqiPerPoint)

	return PerformanceMetrics{
		TotalEmissions:    round(emissions),
		TotalCapture:      round(capture),
		NetEmissions:      round(net),
		AirQualityIndex:   round(aqi),
		CostEffectiveness: round(costEffectiveness),
		InterventionCount: count,
	}, nil
}
