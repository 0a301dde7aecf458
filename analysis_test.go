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
	"testing"

	"github.com/kr/pretty"
)

func TestHourlyProjection(t *testing.T) {
	p := HourlyProjection(PerformanceMetrics{TotalEmissions: 1000, TotalCapture: 200})
	if len(p) != 24 {
		t.Fatalf("have %d hours", len(p))
	}
	for _, test := range []HourlyPoint{
		{Hour: 0, Emissions: 400, Capture: 160, Net: 240},
		{Hour: 5, Emissions: 400, Capture: 160, Net: 240},
		{Hour: 6, Emissions: 1000, Capture: 200, Net: 800},
		{Hour: 8, Emissions: 1400, Capture: 200, Net: 1200},
		{Hour: 12, Emissions: 1000, Capture: 200, Net: 800},
		{Hour: 19, Emissions: 1400, Capture: 200, Net: 1200},
		{Hour: 22, Emissions: 400, Capture: 160, Net: 240},
	} {
		if have := p[test.Hour]; have != test {
			t.Errorf("hour %d: have %+v, want %+v", test.Hour, have, test)
		}
	}

	// Net is rounded from the unrounded products.
	p = HourlyProjection(PerformanceMetrics{TotalEmissions: 3, TotalCapture: 1})
	if have := p[23]; have.Emissions != 1 || have.Capture != 1 || have.Net != 0 {
		t.Errorf("hour 23: %+v", have)
	}
}

func TestClassifyAQI(t *testing.T) {
	for aqi, want := range map[float64]AQICategory{
		0:     Good,
		50:    Good,
		50.5:  Moderate,
		100:   Moderate,
		150:   UnhealthySensitive,
		150.1: Unhealthy,
		500:   Unhealthy,
	} {
		if have := ClassifyAQI(aqi); have != want {
			t.Errorf("%g: have %v, want %v", aqi, have, want)
		}
	}
	if s := UnhealthySensitive.String(); s != "Unhealthy for Sensitive Groups" {
		t.Error(s)
	}
}

func TestBreakdowns(t *testing.T) {
	sources := []EmissionSource{
		{ID: "a", Category: Industrial, EmissionRate: 100, Active: true},
		{ID: "b", Category: Transportation, EmissionRate: 50, Active: true},
		{ID: "c", Category: Industrial, EmissionRate: 25, Active: true},
		{ID: "d", Category: Residential, EmissionRate: 1000},
	}
	interventions := []CaptureIntervention{
		roadside("x", Position{}),
		roadside("y", Position{}),
		func() CaptureIntervention {
			iv, _ := NewIntervention(UrbanForest, "z", Position{})
			iv.Active = false
			return iv
		}(),
	}

	t.Run("emissions", func(t *testing.T) {
		want := []CategoryEmissions{
			{Category: Transportation, Rate: 50},
			{Category: Industrial, Rate: 125},
		}
		if diff := pretty.Diff(EmissionsByCategory(sources), want); len(diff) > 0 {
			t.Errorf("%v", diff)
		}
	})
	t.Run("interventions", func(t *testing.T) {
		want := []CategoryCount{{Category: RoadsideCapture, Count: 2}}
		if diff := pretty.Diff(InterventionsByCategory(interventions), want); len(diff) > 0 {
			t.Errorf("%v", diff)
		}
	})
	t.Run("costs", func(t *testing.T) {
		want := CostSummary{Install: 250000, AnnualMaintenance: 30000, TenYear: 550000}
		if have := SummarizeCosts(interventions); have != want {
			t.Errorf("have %+v, want %+v", have, want)
		}
	})
	t.Run("coverage", func(t *testing.T) {
		if have := CoverageRatio(sources, interventions); different(have, 2./3, 1e-12) {
			t.Errorf("coverage ratio %g", have)
		}
		if have := CoverageRatio(nil, interventions); have != 0 {
			t.Errorf("coverage ratio with no sources %g", have)
		}
	})
	t.Run("reduction", func(t *testing.T) {
		if have := ReductionPercent(PerformanceMetrics{TotalEmissions: 400, TotalCapture: 100}); have != 25 {
			t.Errorf("reduction %g", have)
		}
		if have := ReductionPercent(PerformanceMetrics{TotalCapture: 100}); have != 0 {
			t.Errorf("reduction with no emissions %g", have)
		}
	})
	t.Run("capture", func(t *testing.T) {
		if have := CaptureOver(PerformanceMetrics{TotalCapture: 300}, 24).Value(); have != 7200 {
			t.Errorf("daily capture %g kg", have)
		}
	})
}

func TestSummarizeField(t *testing.T) {
	cells := []GridCell{
		{CO2Level: 400, AirQuality: 50},
		{CO2Level: 410, AirQuality: 55},
		{CO2Level: 520, AirQuality: 110},
		{CO2Level: 380, AirQuality: 40},
	}
	want := FieldSummary{
		Cells:     4,
		MinCO2:    380,
		MaxCO2:    520,
		MeanCO2:   427.5,
		P95CO2:    520,
		Unhealthy: 1,
	}
	if diff := pretty.Diff(SummarizeField(cells), want); len(diff) > 0 {
		t.Errorf("%v", diff)
	}
	if have := SummarizeField(nil); have != (FieldSummary{}) {
		t.Errorf("empty: %+v", have)
	}
	if cells[0].CO2Level != 400 {
		t.Error("input was reordered")
	}
}
