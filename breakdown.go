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

import "github.com/ctessum/unit"

// ReductionPercent returns total capture as a percentage of total
// emissions, or zero when there are no emissions.
func ReductionPercent(m PerformanceMetrics) float64 {
	if m.TotalEmissions <= 0 {
		return 0
	}
	return 100 * m.TotalCapture / m.TotalEmissions
}

// CategoryEmissions is the baseline emission rate of one source category.
type CategoryEmissions struct {
	Category SourceCategory
	Rate     float64 // kg/hour
}

// EmissionsByCategory sums the baseline emission rates of the active
// sources in each category, without time-of-day or traffic scaling.
// Categories with no active sources are omitted; the rest are returned
// in declaration order.
func EmissionsByCategory(sources []EmissionSource) []CategoryEmissions {
	sums := make(map[SourceCategory]float64)
	for _, s := range activeSources(sources) {
		sums[s.Category] += s.EmissionRate
	}
	var o []CategoryEmissions
	for _, c := range SourceCategories {
		if v, ok := sums[c]; ok {
			o = append(o, CategoryEmissions{Category: c, Rate: v})
		}
	}
	return o
}

// CategoryCount is the number of active interventions of one category.
type CategoryCount struct {
	Category InterventionCategory
	Count    int
}

// InterventionsByCategory counts the active interventions in each
// category, omitting categories with none.
func InterventionsByCategory(interventions []CaptureIntervention) []CategoryCount {
	counts := make(map[InterventionCategory]int)
	for _, iv := range activeInterventions(interventions) {
		counts[iv.Category]++
	}
	var o []CategoryCount
	for _, c := range InterventionCategories {
		if n, ok := counts[c]; ok {
			o = append(o, CategoryCount{Category: c, Count: n})
		}
	}
	return o
}

// CostSummary holds the costs of the active interventions.
type CostSummary struct {
	Install           float64
	AnnualMaintenance float64

	// TenYear is install cost plus ten years of maintenance.
	TenYear float64
}

// SummarizeCosts sums the costs of the active interventions.
func SummarizeCosts(interventions []CaptureIntervention) CostSummary {
	var s CostSummary
	for _, iv := range activeInterventions(interventions) {
		s.Install += iv.InstallCost
		s.AnnualMaintenance += iv.AnnualMaintenanceCost
	}
	s.TenYear = s.Install + s.AnnualMaintenance*costHorizon
	return s
}

// CoverageRatio returns the number of active interventions per active
// source, or zero when no sources are active.
func CoverageRatio(sources []EmissionSource, interventions []CaptureIntervention) float64 {
	ns := len(activeSources(sources))
	if ns == 0 {
		return 0
	}
	return float64(len(activeInterventions(interventions))) / float64(ns)
}

// CaptureOver returns the mass of CO₂ captured over the given number of
// hours at the rate in m [kg].
func CaptureOver(m PerformanceMetrics, hours float64) *unit.Unit {
	return unit.New(m.TotalCapture*hours, unit.Dimensions{unit.MassDim: 1})
}
