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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// scenarioFile is the layout of a scenario file. Optional values are
// pointers so that omitted keys can be told apart from zeros.
type scenarioFile struct {
	Config struct {
		Preset         string
		WindSpeed      *float64
		WindDirection  *float64
		Temperature    *float64
		Humidity       *float64
		TimeOfDay      *int
		TrafficDensity *float64
	}
	Sources []struct {
		ID           string
		Category     *SourceCategory
		Name         string
		Position     []float64
		EmissionRate float64
		Active       *bool
	}
	Interventions []struct {
		ID                    string
		Template              *InterventionCategory
		Category              *InterventionCategory
		Name                  *string
		Position              []float64
		CaptureRate           *float64
		InstallCost           *float64
		AnnualMaintenanceCost *float64
		CoverageRadius        *float64
		Active                *bool
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func filePosition(path string, v []float64) (Position, error) {
	if len(v) != 2 {
		return Position{}, fmt.Errorf("urbanco2: %s.Position must be [lat, lng] but has %d values", path, len(v))
	}
	return Position{Lat: v[0], Lng: v[1]}, nil
}

// ReadScenario reads a scenario in TOML format from r. The optional
// [config] table starts from DefaultConfig, or from the named preset, and
// overrides any values it sets. Each [[sources]] and [[interventions]]
// entry is active unless it sets Active = false. An intervention may
// give a Template category, in which case omitted values are taken from
// the template for that category. Every source needs a Category.
//
// Rates, costs, radii, and conditions other than TimeOfDay are floating
// point values and must be written with a decimal point (for example
// EmissionRate = 1000.0); TOML integers are not accepted for them.
func ReadScenario(r io.Reader) (Scenario, error) {
	var f scenarioFile
	md, err := toml.DecodeReader(r, &f)
	if err != nil {
		if strings.Contains(err.Error(), "into a Go float") {
			return Scenario{}, fmt.Errorf("urbanco2: reading scenario: %v; write floating point "+
				"values with a decimal point, for example 1000.0", err)
		}
		return Scenario{}, fmt.Errorf("urbanco2: reading scenario: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return Scenario{}, fmt.Errorf("urbanco2: unknown keys in scenario: %s", strings.Join(keys, ", "))
	}

	cfg := DefaultConfig
	if f.Config.Preset != "" {
		p, err := PresetNamed(f.Config.Preset)
		if err != nil {
			return Scenario{}, err
		}
		cfg = p.Config
	}
	setFloat(&cfg.WindSpeed, f.Config.WindSpeed)
	setFloat(&cfg.WindDirection, f.Config.WindDirection)
	setFloat(&cfg.Temperature, f.Config.Temperature)
	setFloat(&cfg.Humidity, f.Config.Humidity)
	setFloat(&cfg.TrafficDensity, f.Config.TrafficDensity)
	if f.Config.TimeOfDay != nil {
		cfg.TimeOfDay = *f.Config.TimeOfDay
	}

	s := Scenario{Config: cfg}
	for i, fs := range f.Sources {
		path := fmt.Sprintf("sources[%d]", i)
		if fs.Category == nil {
			return Scenario{}, fmt.Errorf("urbanco2: %s needs a Category", path)
		}
		pos, err := filePosition(path, fs.Position)
		if err != nil {
			return Scenario{}, err
		}
		s.Sources = append(s.Sources, EmissionSource{
			ID:           fs.ID,
			Category:     *fs.Category,
			Name:         fs.Name,
			Position:     pos,
			EmissionRate: fs.EmissionRate,
			Active:       fs.Active == nil || *fs.Active,
		})
	}
	for i, fi := range f.Interventions {
		path := fmt.Sprintf("interventions[%d]", i)
		pos, err := filePosition(path, fi.Position)
		if err != nil {
			return Scenario{}, err
		}
		iv := CaptureIntervention{ID: fi.ID, Position: pos}
		if fi.Template != nil {
			t, err := TemplateFor(*fi.Template)
			if err != nil {
				return Scenario{}, err
			}
			iv = t.Intervention(fi.ID, pos)
		} else if fi.Category == nil {
			return Scenario{}, fmt.Errorf("urbanco2: %s needs a Category or a Template", path)
		}
		if fi.Category != nil {
			iv.Category = *fi.Category
		}
		if fi.Name != nil {
			iv.Name = *fi.Name
		}
		setFloat(&iv.CaptureRate, fi.CaptureRate)
		setFloat(&iv.InstallCost, fi.InstallCost)
		setFloat(&iv.AnnualMaintenanceCost, fi.AnnualMaintenanceCost)
		setFloat(&iv.CoverageRadius, fi.CoverageRadius)
		iv.Active = fi.Active == nil || *fi.Active
		s.Interventions = append(s.Interventions, iv)
	}
	if err := validateInputs(s.Sources, s.Interventions, s.Config); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// cellVariables are the per-cell values available to output expressions.
var cellVariables = map[string]func(c GridCell) float64{
	"CO2":        func(c GridCell) float64 { return c.CO2Level },
	"AirQuality": func(c GridCell) float64 { return c.AirQuality },
	"Lat":        func(c GridCell) float64 { return c.Position.Lat },
	"Lng":        func(c GridCell) float64 { return c.Position.Lng },
	"Row":        func(c GridCell) float64 { return float64(c.Row) },
	"Col":        func(c GridCell) float64 { return float64(c.Col) },
}

// DefaultOutputVariables are the output variables used when none are
// specified.
var DefaultOutputVariables = map[string]string{
	"CO2":        "CO2",
	"AirQuality": "AirQuality",
}

// Outputter calculates and writes output variables for the cells of a
// field. Output variables are expressions of the cell variables CO2,
// AirQuality, Lat, Lng, Row, and Col, and may use any of the output
// functions.
type Outputter struct {
	names       []string
	expressions map[string]*govaluate.EvaluableExpression
}

func floatArgs(name string, n int, args []interface{}) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("urbanco2: got %d arguments for function '%s', but needs %d", len(args), name, n)
	}
	o := make([]float64, n)
	for i, a := range args {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("urbanco2: argument %d of function '%s' is %T, not a number", i, name, a)
		}
		o[i] = v
	}
	return o, nil
}

// NewOutputter parses outputVariables, which maps output names to
// expressions. The default output functions are:
//
// 'exp(x)', which applies the exponential function e^x.
//
// 'max(x, y)' and 'min(x, y)'.
//
// 'clamp(x, lo, hi)', which limits x to the range [lo, hi].
//
// outputFunctions may add functions or replace the defaults. Output names
// must be valid shapefile field names.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	funcs := map[string]govaluate.ExpressionFunction{
		"exp": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("exp", 1, args)
			if err != nil {
				return nil, err
			}
			return math.Exp(v[0]), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("max", 2, args)
			if err != nil {
				return nil, err
			}
			return math.Max(v[0], v[1]), nil
		},
		"min": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("min", 2, args)
			if err != nil {
				return nil, err
			}
			return math.Min(v[0], v[1]), nil
		},
		"clamp": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("clamp", 3, args)
			if err != nil {
				return nil, err
			}
			return math.Max(v[1], math.Min(v[2], v[0])), nil
		},
	}
	for k, f := range outputFunctions {
		funcs[k] = f
	}
	if len(outputVariables) == 0 {
		outputVariables = DefaultOutputVariables
	}
	if err := checkOutputNames(outputVariables); err != nil {
		return nil, err
	}

	o := &Outputter{expressions: make(map[string]*govaluate.EvaluableExpression)}
	for name, expr := range outputVariables {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("urbanco2: output variable %s: %v", name, err)
		}
		for _, v := range e.Vars() {
			if _, ok := cellVariables[v]; !ok {
				return nil, fmt.Errorf("urbanco2: output variable %s: unknown variable '%s'", name, v)
			}
		}
		o.expressions[name] = e
		o.names = append(o.names, name)
	}
	sort.Strings(o.names)
	return o, nil
}

// checkOutputNames checks that no output variable name exceeds 10
// characters or includes characters that are unsupported in shapefile
// field names.
func checkOutputNames(o map[string]string) error {
	valid := regexp.MustCompile(`^[A-Za-z]\w*$`)
	for key := range o {
		long := len(key) > 10
		ok := valid.MatchString(key)
		switch {
		case long && !ok:
			return fmt.Errorf("urbanco2: output variable name '%s' exceeds 10 characters and includes unsupported character(s)", key)
		case long:
			return fmt.Errorf("urbanco2: output variable name '%s' exceeds 10 characters", key)
		case !ok:
			return fmt.Errorf("urbanco2: output variable name '%s' includes unsupported characters", key)
		}
	}
	return nil
}

// Names returns the output variable names in sorted order.
func (o *Outputter) Names() []string {
	return append([]string(nil), o.names...)
}

// Results calculates the value of every output variable in every cell.
func (o *Outputter) Results(cells []GridCell) (map[string][]float64, error) {
	r := make(map[string][]float64, len(o.names))
	params := make(map[string]interface{}, len(cellVariables))
	for _, name := range o.names {
		r[name] = make([]float64, len(cells))
	}
	for i, c := range cells {
		for k, f := range cellVariables {
			params[k] = f(c)
		}
		for _, name := range o.names {
			v, err := o.expressions[name].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("urbanco2: evaluating %s in cell %s: %v", name, c.ID(), err)
			}
			fv, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("urbanco2: output variable %s gives %T, not a number", name, v)
			}
			r[name][i] = fv
		}
	}
	return r, nil
}

// wgs84 is the projection of the shapefile output.
const wgs84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["Degree",0.017453292519943295]]`

// WriteShapefile writes the output variables of cells to a polygon
// shapefile with one square per cell, along with a .prj file. Any
// extension on path is replaced with .shp.
func (o *Outputter) WriteShapefile(path string, l Lattice, cells []GridCell) error {
	results, err := o.Results(cells)
	if err != nil {
		return err
	}
	fields := make([]goshp.Field, len(o.names))
	for i, v := range o.names {
		fields[i] = goshp.FloatField(v, 14, 8)
	}

	fileBase := strings.TrimSuffix(path, filepath.Ext(path))
	shape, err := shp.NewEncoderFromFields(fileBase+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("urbanco2: creating output shapefile: %v", err)
	}
	for i, c := range cells {
		vals := make([]interface{}, len(o.names))
		for j, v := range o.names {
			vals[j] = results[v][i]
		}
		if err = shape.EncodeFields(l.CellPolygon(c.Row, c.Col), vals...); err != nil {
			shape.Close()
			return fmt.Errorf("urbanco2: writing output shapefile: %v", err)
		}
	}
	shape.Close()

	f, err := os.Create(fileBase + ".prj")
	if err != nil {
		return fmt.Errorf("urbanco2: creating output prj file: %v", err)
	}
	if _, err = fmt.Fprint(f, wgs84); err != nil {
		f.Close()
		return fmt.Errorf("urbanco2: writing output prj file: %v", err)
	}
	return f.Close()
}

type feature struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Geometry   *geojson.Geometry  `json:"geometry"`
	Properties map[string]float64 `json:"properties"`
}

type featureCollection struct {
	Type     string     `json:"type"`
	Features []*feature `json:"features"`
}

// WriteGeoJSON writes the output variables of cells to w as a GeoJSON
// FeatureCollection with one square polygon per cell.
func (o *Outputter) WriteGeoJSON(w io.Writer, l Lattice, cells []GridCell) error {
	results, err := o.Results(cells)
	if err != nil {
		return err
	}
	fc := featureCollection{Type: "FeatureCollection", Features: make([]*feature, len(cells))}
	for i, c := range cells {
		g, err := geojson.ToGeoJSON(l.CellPolygon(c.Row, c.Col))
		if err != nil {
			return fmt.Errorf("urbanco2: encoding cell %s: %v", c.ID(), err)
		}
		props := make(map[string]float64, len(o.names))
		for _, v := range o.names {
			props[v] = results[v][i]
		}
		fc.Features[i] = &feature{Type: "Feature", ID: c.ID(), Geometry: g, Properties: props}
	}
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("urbanco2: writing GeoJSON: %v", err)
	}
	return nil
}
