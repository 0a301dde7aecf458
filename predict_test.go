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
	"testing"

	"github.com/ctessum/unit"
	"github.com/kr/pretty"
)

func TestPredictImpact(t *testing.T) {
	iv := roadside("preview", Position{Lat: 40.75, Lng: -73.98})
	iv.Active = false

	t.Run("neutral", func(t *testing.T) {
		have, err := PredictImpact(iv, neutral)
		if err != nil {
			t.Fatal(err)
		}
		want := Impact{
			CO2Reduction:   300,
			AQIImprovement: 30,
			AnnualCapture:  2628000,
			TotalCost:      275000,
			CostBenefit:    0.1,
		}
		if diff := pretty.Diff(have, want); len(diff) > 0 {
			t.Errorf("%v", diff)
		}
	})
	t.Run("default", func(t *testing.T) {
		have, err := PredictImpact(iv, DefaultConfig)
		if err != nil {
			t.Fatal(err)
		}
		if have.CO2Reduction != 290 || have.AQIImprovement != 29 {
			t.Errorf("reduction %g, AQI improvement %g; want 290, 29", have.CO2Reduction, have.AQIImprovement)
		}
		if different(have.AnnualCapture, 2538648, 1e-9) {
			t.Errorf("annual capture %g", have.AnnualCapture)
		}
		if have.CostBenefit != 0.11 {
			t.Errorf("cost benefit %g, want 0.11", have.CostBenefit)
		}
		if have.Unbounded() {
			t.Error("should be bounded")
		}
		m := have.AnnualCaptureMass()
		if m.Value() != have.AnnualCapture || !m.Dimensions().Matches(unit.Dimensions{unit.MassDim: 1}) {
			t.Errorf("annual capture mass %v", m)
		}
	})
	t.Run("unbounded", func(t *testing.T) {
		zero := iv
		zero.CaptureRate = 0
		have, err := PredictImpact(zero, neutral)
		if err != nil {
			t.Fatal(err)
		}
		if !have.Unbounded() || !math.IsInf(have.CostBenefit, 1) {
			t.Errorf("cost benefit %g should be unbounded", have.CostBenefit)
		}
		if have.AnnualCapture != 0 || have.TotalCost != 275000 {
			t.Errorf("%+v", have)
		}
	})
	t.Run("invalid", func(t *testing.T) {
		bad := iv
		bad.CoverageRadius = -5
		if _, err := PredictImpact(bad, neutral); !IsValidation(err) {
			t.Errorf("want validation error, have %v", err)
		}
	})
}
