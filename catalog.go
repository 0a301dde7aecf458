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

import "fmt"

// Template holds the default properties of a capture technology.
type Template struct {
	Category    InterventionCategory
	Name        string
	Description string

	CaptureRate           float64 // kg/hour
	InstallCost           float64
	AnnualMaintenanceCost float64
	CoverageRadius        float64 // m
}

// Templates holds the default properties of each intervention category,
// in declaration order.
var Templates = []Template{
	{
		Category:              RoadsideCapture,
		Name:                  "Roadside CO₂ Capture",
		Description:           "High-efficiency roadside units for traffic corridors",
		CaptureRate:           300,
		InstallCost:           125000,
		AnnualMaintenanceCost: 15000,
		CoverageRadius:        150,
	},
	{
		Category:              VerticalGarden,
		Name:                  "Vertical Garden System",
		Description:           "Living walls with integrated CO₂ absorption",
		CaptureRate:           120,
		InstallCost:           45000,
		AnnualMaintenanceCost: 8000,
		CoverageRadius:        200,
	},
	{
		Category:              Biofilter,
		Name:                  "Biofilter Array",
		Description:           "Biological filtration systems for air purification",
		CaptureRate:           200,
		InstallCost:           75000,
		AnnualMaintenanceCost: 12000,
		CoverageRadius:        180,
	},
	{
		Category:              UrbanForest,
		Name:                  "Urban Forest Patch",
		Description:           "Dense urban forestry for large-scale carbon capture",
		CaptureRate:           800,
		InstallCost:           200000,
		AnnualMaintenanceCost: 25000,
		CoverageRadius:        500,
	},
	{
		Category:              GreenRoof,
		Name:                  "Green Roof System",
		Description:           "Rooftop vegetation systems with air filtration",
		CaptureRate:           150,
		InstallCost:           90000,
		AnnualMaintenanceCost: 10000,
		CoverageRadius:        300,
	},
}

// TemplateFor returns the template for category c.
func TemplateFor(c InterventionCategory) (Template, error) {
	for _, t := range Templates {
		if t.Category == c {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("urbanco2: no template for intervention category %v", c)
}

// Intervention returns an active intervention at pos with the properties
// of the template.
func (t Template) Intervention(id string, pos Position) CaptureIntervention {
	return CaptureIntervention{
		ID:                    id,
		Category:              t.Category,
		Name:                  t.Name,
		Position:              pos,
		CaptureRate:           t.CaptureRate,
		InstallCost:           t.InstallCost,
		AnnualMaintenanceCost: t.AnnualMaintenanceCost,
		CoverageRadius:        t.CoverageRadius,
		Active:                true,
	}
}

// NewIntervention returns an active intervention of category c at pos
// with the default properties of that category.
func NewIntervention(c InterventionCategory, id string, pos Position) (CaptureIntervention, error) {
	t, err := TemplateFor(c)
	if err != nil {
		return CaptureIntervention{}, err
	}
	return t.Intervention(id, pos), nil
}

// DefaultConfig is mid-day conditions with moderate traffic.
var DefaultConfig = SimulationConfig{
	WindSpeed:      3.2,
	WindDirection:  90,
	Temperature:    22,
	Humidity:       65,
	TimeOfDay:      12,
	TrafficDensity: 0.8,
}

// Preset is a named set of conditions.
type Preset struct {
	Name        string
	Description string
	Config      SimulationConfig
}

// Presets holds commonly used sets of conditions.
var Presets = []Preset{
	{
		Name:        "Default",
		Description: "Mid-day, moderate traffic",
		Config:      DefaultConfig,
	},
	{
		Name:        "Rush Hour",
		Description: "High traffic, morning conditions",
		Config: SimulationConfig{
			WindSpeed: 2.5, WindDirection: 90, Temperature: 22,
			Humidity: 55, TimeOfDay: 8, TrafficDensity: 1.4,
		},
	},
	{
		Name:        "Windy Day",
		Description: "High wind, good dispersion",
		Config: SimulationConfig{
			WindSpeed: 8.0, WindDirection: 270, Temperature: 15,
			Humidity: 75, TimeOfDay: 14, TrafficDensity: 0.6,
		},
	},
	{
		Name:        "Calm Evening",
		Description: "Low wind, poor dispersion",
		Config: SimulationConfig{
			WindSpeed: 1.0, WindDirection: 0, Temperature: 28,
			Humidity: 85, TimeOfDay: 22, TrafficDensity: 0.3,
		},
	},
}

// PresetNamed returns the preset with the given name.
func PresetNamed(name string) (Preset, error) {
	for _, p := range Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("urbanco2: unknown preset %q", name)
}
