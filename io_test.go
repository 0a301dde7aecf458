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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/kr/pretty"
)

func readTestScenario(t *testing.T) Scenario {
	t.Helper()
	f, err := os.Open("testdata/scenario.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, err := ReadScenario(f)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestReadScenario(t *testing.T) {
	s := readTestScenario(t)
	if len(s.Sources) != 10 || len(s.Interventions) != 5 {
		t.Fatalf("%d sources and %d interventions", len(s.Sources), len(s.Interventions))
	}
	if s.Config != DefaultConfig {
		t.Errorf("config: %v", pretty.Diff(s.Config, DefaultConfig))
	}
	want := EmissionSource{
		ID:           "tps-mumbai",
		Category:     Industrial,
		Name:         "Trombay Power Station",
		Position:     Position{Lat: 19.02, Lng: 72.91},
		EmissionRate: 8000,
		Active:       true,
	}
	if diff := pretty.Diff(s.Sources[9], want); len(diff) > 0 {
		t.Errorf("%v", diff)
	}

	m, err := CalculateMetrics(s.Sources, s.Interventions, s.Config)
	if err != nil {
		t.Fatal(err)
	}
	wantMetrics := PerformanceMetrics{
		TotalEmissions:    31800,
		TotalCapture:      1063,
		NetEmissions:      30737,
		AirQualityIndex:   145,
		CostEffectiveness: 388,
		InterventionCount: 5,
	}
	if diff := pretty.Diff(m, wantMetrics); len(diff) > 0 {
		t.Errorf("%v", diff)
	}
}

func TestReadScenarioTemplate(t *testing.T) {
	const f = `
[config]
Preset = "Rush Hour"
Humidity = 60.0

[[interventions]]
ID = "forest"
Template = "urban-forest"
Position = [40.75, -73.98]
CaptureRate = 900.0
Active = false
`
	s, err := ReadScenario(strings.NewReader(f))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Presets[1].Config
	cfg.Humidity = 60
	if s.Config != cfg {
		t.Errorf("config: %v", pretty.Diff(s.Config, cfg))
	}
	want := CaptureIntervention{
		ID:                    "forest",
		Category:              UrbanForest,
		Name:                  "Urban Forest Patch",
		Position:              Position{Lat: 40.75, Lng: -73.98},
		CaptureRate:           900,
		InstallCost:           200000,
		AnnualMaintenanceCost: 25000,
		CoverageRadius:        500,
	}
	if diff := pretty.Diff(s.Interventions, []CaptureIntervention{want}); len(diff) > 0 {
		t.Errorf("%v", diff)
	}
}

func TestReadScenarioErrors(t *testing.T) {
	for name, f := range map[string]string{
		"unknown key":        "[config]\nWindSpeeed = 2.0\n",
		"unknown category":   "[[sources]]\nID = \"a\"\nCategory = \"volcanic\"\nPosition = [1.0, 2.0]\n",
		"short position":     "[[sources]]\nID = \"a\"\nCategory = \"industrial\"\nPosition = [1.0]\n",
		"no category":        "[[interventions]]\nID = \"a\"\nPosition = [1.0, 2.0]\nCoverageRadius = 10.0\n",
		"unknown preset":     "[config]\nPreset = \"Monsoon\"\n",
		"invalid":            "[[sources]]\nID = \"a\"\nCategory = \"industrial\"\nPosition = [1.0, 2.0]\nEmissionRate = -3.0\n",
		"syntax":             "[[sources]\n",
		"no source category": "[[sources]]\nID = \"a\"\nPosition = [1.0, 2.0]\nEmissionRate = 1000.0\n",
		"integer rate":       "[[sources]]\nID = \"a\"\nCategory = \"industrial\"\nPosition = [1.0, 2.0]\nEmissionRate = 1000\n",
	} {
		if _, err := ReadScenario(strings.NewReader(f)); err == nil {
			t.Errorf("%s: want error", name)
		}
	}

	_, err := ReadScenario(strings.NewReader("[[sources]]\nID = \"a\"\nPosition = [1.0, 2.0]\n"))
	if err == nil || !strings.Contains(err.Error(), "sources[0] needs a Category") {
		t.Errorf("missing source category: have %v", err)
	}
	_, err = ReadScenario(strings.NewReader("[[sources]]\nID = \"a\"\nCategory = \"industrial\"\nPosition = [1.0, 2.0]\nEmissionRate = 1000\n"))
	if err == nil || !strings.Contains(err.Error(), "decimal point") {
		t.Errorf("integer rate: have %v", err)
	}
}

func testCells(t *testing.T) (Lattice, []GridCell) {
	t.Helper()
	l := Lattice{MinLat: 40.75, MaxLat: 40.756, MinLng: -73.99, MaxLng: -73.984, Step: 0.002}
	sources := []EmissionSource{{ID: "s", Category: Transportation, Position: l.Position(1, 1), EmissionRate: 50000, Active: true}}
	cells, err := GenerateField(l, sources, nil, neutral)
	if err != nil {
		t.Fatal(err)
	}
	return l, cells
}

func TestOutputter(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"Excess": "CO2 - 400",
		"Capped": "clamp(AirQuality, 0, 60)",
		"Biggest": "max(CO2, AirQuality)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if names := o.Names(); strings.Join(names, ",") != "Biggest,Capped,Excess" {
		t.Errorf("names: %v", names)
	}
	_, cells := testCells(t)
	r, err := o.Results(cells)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range cells {
		if r["Excess"][i] != c.CO2Level-400 {
			t.Errorf("cell %s: excess %g", c.ID(), r["Excess"][i])
		}
		if r["Capped"][i] > 60 {
			t.Errorf("cell %s: capped %g", c.ID(), r["Capped"][i])
		}
		if r["Biggest"][i] != c.CO2Level {
			t.Errorf("cell %s: biggest %g", c.ID(), r["Biggest"][i])
		}
	}

	defaults, err := NewOutputter(nil, map[string]govaluate.ExpressionFunction{})
	if err != nil {
		t.Fatal(err)
	}
	if names := defaults.Names(); len(names) != 2 {
		t.Errorf("default names: %v", names)
	}

	for name, vars := range map[string]map[string]string{
		"long name":        {"TooLongName1": "CO2"},
		"bad character":    {"CO2-ppm": "CO2"},
		"unknown variable": {"PM25": "PM25 * 2"},
		"syntax":           {"Bad": "CO2 +"},
	} {
		if _, err := NewOutputter(vars, nil); err == nil {
			t.Errorf("%s: want error", name)
		}
	}

	boolean, err := NewOutputter(map[string]string{"High": "CO2 > 400"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := boolean.Results(cells); err == nil {
		t.Error("boolean output should fail")
	}
}

func TestWriteShapefile(t *testing.T) {
	l, cells := testCells(t)
	o, err := NewOutputter(map[string]string{"CO2": "CO2", "Excess": "CO2 - 400"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	dir, err := os.MkdirTemp("", "urbanco2")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := o.WriteShapefile(filepath.Join(dir, "field.txt"), l, cells); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "field.prj")); err != nil {
		t.Error(err)
	}
	d, err := shp.NewDecoder(filepath.Join(dir, "field.shp"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	var n int
	for {
		g, fields, more := d.DecodeRowFields("CO2", "Excess")
		if !more {
			break
		}
		co2, err := strconv.ParseFloat(strings.Trim(fields["CO2"], " \x00"), 64)
		if err != nil {
			t.Fatal(err)
		}
		if co2 != cells[n].CO2Level {
			t.Errorf("row %d: CO2 %g != %g", n, co2, cells[n].CO2Level)
		}
		b := g.Bounds()
		if p := cells[n].Position; b.Min.X > p.Lng || b.Max.X < p.Lng || b.Min.Y > p.Lat || b.Max.Y < p.Lat {
			t.Errorf("row %d: bounds %+v don't contain %v", n, b, p)
		}
		n++
	}
	if err := d.Error(); err != nil {
		t.Fatal(err)
	}
	if n != len(cells) {
		t.Errorf("%d rows, want %d", n, len(cells))
	}
}

func TestWriteGeoJSON(t *testing.T) {
	l, cells := testCells(t)
	o, err := NewOutputter(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := o.WriteGeoJSON(&b, l, cells); err != nil {
		t.Fatal(err)
	}
	var fc struct {
		Type     string
		Features []struct {
			ID       string
			Geometry struct {
				Type        string
				Coordinates [][][]float64
			}
			Properties map[string]float64
		}
	}
	if err := json.Unmarshal(b.Bytes(), &fc); err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != len(cells) {
		t.Fatalf("%s with %d features", fc.Type, len(fc.Features))
	}
	for i, f := range fc.Features {
		if f.ID != cells[i].ID() || f.Geometry.Type != "Polygon" || len(f.Geometry.Coordinates[0]) != 5 {
			t.Errorf("feature %d: %+v", i, f)
		}
		if f.Properties["CO2"] != cells[i].CO2Level || f.Properties["AirQuality"] != cells[i].AirQuality {
			t.Errorf("feature %d properties: %v", i, f.Properties)
		}
	}
}
