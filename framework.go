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

// Package urbanco2 is a simplified model of urban carbon dioxide emissions and
// the local effect of carbon-capture interventions. It calculates city-wide
// totals, a gridded concentration field, and the standalone impact of
// individual interventions under a given set of weather and traffic
// conditions.
//
// Every calculation is a function of its explicit arguments; no state is kept
// between calls.
package urbanco2

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Version gives the version number.
const Version = "0.1.0"

// Position is a geographic location in decimal degrees.
type Position struct {
	Lat, Lng float64
}

// Point returns the location as a geom.Point, with longitude as X and
// latitude as Y.
func (p Position) Point() geom.Point {
	return geom.Point{X: p.Lng, Y: p.Lat}
}

// Bounds returns the zero-area bounds of p.
func (p Position) Bounds() *geom.Bounds {
	return p.Point().Bounds()
}

func (p Position) String() string {
	return fmt.Sprintf("[%g, %g]", p.Lat, p.Lng)
}

// EmissionSource is a point source of CO₂.
type EmissionSource struct {
	ID       string
	Category SourceCategory
	Name     string
	Position Position

	// EmissionRate is the baseline emission rate [kg CO₂/hour].
	EmissionRate float64

	Active bool
}

// CaptureIntervention is a capture technology deployed at a location.
type CaptureIntervention struct {
	ID       string
	Category InterventionCategory
	Name     string
	Position Position

	// CaptureRate is the nominal capture rate [kg CO₂/hour].
	CaptureRate float64

	InstallCost           float64 // currency units
	AnnualMaintenanceCost float64 // currency units per year

	// CoverageRadius is the radius within which the intervention
	// lowers local concentrations [m].
	CoverageRadius float64

	Active bool
}

// SimulationConfig holds the environmental and urban conditions that
// scale emissions and capture.
type SimulationConfig struct {
	WindSpeed float64 // m/s, 0–20

	// WindDirection [degrees, 0–360] is carried for display but does not
	// enter any calculation.
	WindDirection float64

	Temperature    float64 // °C, -10–40
	Humidity       float64 // %, 10–90
	TimeOfDay      int     // hour, 0–23
	TrafficDensity float64 // unitless, 0.1–1.5
}

// GridCell holds the calculated concentration at one lattice point.
type GridCell struct {
	Row, Col int // lattice coordinates
	Position Position

	CO2Level   float64 // ppm, ≥ 380
	AirQuality float64 // index, 0–500
}

// ID returns the identity of the cell, derived from its lattice coordinates.
func (c GridCell) ID() string {
	return fmt.Sprintf("%d-%d", c.Row, c.Col)
}

// PerformanceMetrics holds the city-wide totals for one set of inputs.
type PerformanceMetrics struct {
	TotalEmissions float64 // kg/hour
	TotalCapture   float64 // kg/hour
	NetEmissions   float64 // kg/hour

	AirQualityIndex float64 // index, ≥ 50

	// CostEffectiveness is total install cost per kg/hour of capture.
	CostEffectiveness float64

	InterventionCount int
}

func (m PerformanceMetrics) String() string {
	return fmt.Sprintf("emissions=%g kg/h capture=%g kg/h net=%g kg/h AQI=%g "+
		"cost-effectiveness=%g interventions=%d",
		m.TotalEmissions, m.TotalCapture, m.NetEmissions, m.AirQualityIndex,
		m.CostEffectiveness, m.InterventionCount)
}

// activeSources returns the active members of sources, in order.
func activeSources(sources []EmissionSource) []EmissionSource {
	o := make([]EmissionSource, 0, len(sources))
	for _, s := range sources {
		if s.Active {
			o = append(o, s)
		}
	}
	return o
}

// activeInterventions returns the active members of interventions, in order.
func activeInterventions(interventions []CaptureIntervention) []CaptureIntervention {
	o := make([]CaptureIntervention, 0, len(interventions))
	for _, iv := range interventions {
		if iv.Active {
			o = append(o, iv)
		}
	}
	return o
}
