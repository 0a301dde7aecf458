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
	"math"

	"github.com/ctessum/unit"
)

const (
	hoursPerYear = 24 * 365
	costHorizon  = 10  // years of maintenance included in the total cost
	aqiPerKgHour = 0.1 // AQI improvement per kg/hour of capture
)

// Impact is the projected standalone effect of a single intervention.
type Impact struct {
	CO2Reduction   float64 // kg/hour, rounded
	AQIImprovement float64 // index points, rounded

	AnnualCapture float64 // kg/year
	TotalCost     float64 // install cost plus ten years of maintenance

	// CostBenefit is the ten-year cost per kg captured per year, rounded to
	// two decimal places. It is +Inf when the intervention captures nothing.
	CostBenefit float64
}

// Unbounded reports whether the cost-benefit ratio has no finite value
// because the intervention captures nothing.
func (i Impact) Unbounded() bool {
	return math.IsInf(i.CostBenefit, 1)
}

// AnnualCaptureMass returns the annual capture as a mass [kg].
func (i Impact) AnnualCaptureMass() *unit.Unit {
	return unit.New(i.AnnualCapture, unit.Dimensions{unit.MassDim: 1})
}

// PredictImpact projects the impact iv would have on its own under the
// conditions in cfg, regardless of whether it is active. It is meant for
// previewing an intervention before it is added to a scenario.
func PredictImpact(iv CaptureIntervention, cfg SimulationConfig) (Impact, error) {
	var c check
	c.intervention("intervention", iv)
	c.config("config", cfg)
	if err := c.err(); err != nil {
		return Impact{}, err
	}

	reduction := iv.CaptureRate * WeatherModifier(cfg)
	annual := reduction * hoursPerYear
	total := iv.InstallCost + iv.AnnualMaintenanceCost*costHorizon

	costBenefit := math.Inf(1)
	if annual > 0 {
		costBenefit = roundTo(total/annual, 2)
	}
	return Impact{
		CO2Reduction:   round(reduction),
		AQIImprovement: round(reduction * aqiPerKgHour),
		AnnualCapture:  annual,
		TotalCost:      total,
		CostBenefit:    costBenefit,
	}, nil
}
