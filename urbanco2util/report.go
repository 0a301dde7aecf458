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

package urbanco2util

import (
	"fmt"

	"github.com/spatialmodel/urbanco2"
	"github.com/tealeg/xlsx"
)

// addRow adds a row to sheet holding vals, which can be strings, ints,
// float64s, or bools.
func addRow(sheet *xlsx.Sheet, vals ...interface{}) {
	row := sheet.AddRow()
	for _, v := range vals {
		cell := row.AddCell()
		switch v := v.(type) {
		case string:
			cell.SetString(v)
		case int:
			cell.SetInt(v)
		case float64:
			cell.SetFloat(v)
		case bool:
			cell.SetBool(v)
		default:
			cell.SetString(fmt.Sprint(v))
		}
	}
}

// WriteReport writes a spreadsheet summarizing the scenario s and its
// result r to path.
func WriteReport(path string, s urbanco2.Scenario, r *urbanco2.Result) error {
	f := xlsx.NewFile()
	sheets := make(map[string]*xlsx.Sheet)
	for _, name := range []string{"Metrics", "Hourly", "Emissions", "Interventions", "Field"} {
		sheet, err := f.AddSheet(name)
		if err != nil {
			return fmt.Errorf("urbanco2: creating report: %v", err)
		}
		sheets[name] = sheet
	}

	m := r.Metrics
	costs := urbanco2.SummarizeCosts(s.Interventions)
	sh := sheets["Metrics"]
	addRow(sh, "Metric", "Value", "Units")
	addRow(sh, "Total emissions", m.TotalEmissions, "kg/hour")
	addRow(sh, "Total capture", m.TotalCapture, "kg/hour")
	addRow(sh, "Net emissions", m.NetEmissions, "kg/hour")
	addRow(sh, "Reduction", urbanco2.ReductionPercent(m), "%")
	addRow(sh, "Air quality index", m.AirQualityIndex, "")
	addRow(sh, "Air quality", urbanco2.ClassifyAQI(m.AirQualityIndex).String(), "")
	addRow(sh, "Cost effectiveness", m.CostEffectiveness, "per kg/hour")
	addRow(sh, "Active interventions", m.InterventionCount, "")
	addRow(sh, "Coverage ratio", urbanco2.CoverageRatio(s.Sources, s.Interventions), "interventions per source")
	addRow(sh, "Total investment", costs.Install, "")
	addRow(sh, "Annual maintenance", costs.AnnualMaintenance, "per year")
	addRow(sh, "Ten-year cost", costs.TenYear, "")
	addRow(sh, "Daily capture", urbanco2.CaptureOver(m, 24).Value(), "kg")
	addRow(sh, "Annual capture", urbanco2.CaptureOver(m, 24*365).Value(), "kg")

	sh = sheets["Hourly"]
	addRow(sh, "Hour", "Emissions", "Capture", "Net")
	for _, h := range urbanco2.HourlyProjection(m) {
		addRow(sh, h.Hour, h.Emissions, h.Capture, h.Net)
	}

	sh = sheets["Emissions"]
	addRow(sh, "Category", "Baseline rate (kg/hour)")
	for _, c := range urbanco2.EmissionsByCategory(s.Sources) {
		addRow(sh, c.Category.String(), c.Rate)
	}

	sh = sheets["Interventions"]
	addRow(sh, "ID", "Name", "Category", "Active", "CO2 reduction (kg/hour)",
		"AQI improvement", "Annual capture (kg)", "Ten-year cost", "Cost per kg/year")
	for _, iv := range s.Interventions {
		imp, err := urbanco2.PredictImpact(iv, s.Config)
		if err != nil {
			return err
		}
		var cb interface{} = imp.CostBenefit
		if imp.Unbounded() {
			cb = "unbounded"
		}
		addRow(sh, iv.ID, iv.Name, iv.Category.String(), iv.Active, imp.CO2Reduction,
			imp.AQIImprovement, imp.AnnualCapture, imp.TotalCost, cb)
	}

	fs := urbanco2.SummarizeField(r.Cells)
	sh = sheets["Field"]
	addRow(sh, "Statistic", "Value")
	addRow(sh, "Cells", fs.Cells)
	addRow(sh, "Minimum CO2 (ppm)", fs.MinCO2)
	addRow(sh, "Mean CO2 (ppm)", fs.MeanCO2)
	addRow(sh, "95th percentile CO2 (ppm)", fs.P95CO2)
	addRow(sh, "Maximum CO2 (ppm)", fs.MaxCO2)
	addRow(sh, "Cells with AQI > 100", fs.Unhealthy)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("urbanco2: writing report: %v", err)
	}
	return nil
}
