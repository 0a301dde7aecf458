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
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Parameters of the concentration field.
const (
	backgroundCO2 = 400.  // ppm
	floorCO2      = 380.  // ppm; capture cannot lower a cell below this
	sourceRange   = 2000. // m; distance at which a source's influence vanishes
	metersPerDeg  = 111000.

	maxAirQuality = 500.
)

// distance returns the approximate distance [m] from the cell at c to p,
// using an equirectangular projection about the latitude of the cell.
func distance(c, p Position) float64 {
	dx := (c.Lat - p.Lat) * metersPerDeg
	dy := (c.Lng - p.Lng) * metersPerDeg * math.Cos(c.Lat*math.Pi/180)
	return math.Sqrt(dx*dx + dy*dy)
}

// searchBounds returns a box around c that contains every point within
// radius meters of c as measured by distance.
func searchBounds(c Position, radius float64) *geom.Bounds {
	radius *= 1 + 1e-6
	dLat := radius / metersPerDeg
	dLng := math.Inf(1)
	if cos := math.Cos(c.Lat * math.Pi / 180); cos > 1e-12 {
		dLng = radius / (metersPerDeg * cos)
	}
	return &geom.Bounds{
		Min: geom.Point{X: c.Lng - dLng, Y: c.Lat - dLat},
		Max: geom.Point{X: c.Lng + dLng, Y: c.Lat + dLat},
	}
}

// airQuality returns the air quality index corresponding to a CO₂
// concentration [ppm].
func airQuality(co2 float64) float64 {
	return math.Max(0, math.Min(maxAirQuality, (co2-backgroundCO2)*0.5+50))
}

// indexed is an entry in a fieldIndex, recording the position of the
// entry in its original list.
type indexed struct {
	geom.Point
	i int
}

// fieldIndex finds the members of a list of locations that may be near
// a cell.
type fieldIndex struct {
	tree   *rtree.Rtree
	radius float64
}

func newFieldIndex(positions []Position, radius float64) *fieldIndex {
	idx := &fieldIndex{tree: rtree.NewTree(25, 50), radius: radius}
	for i, p := range positions {
		idx.tree.Insert(&indexed{Point: p.Point(), i: i})
	}
	return idx
}

// near returns the indices of the locations that may be within the index
// radius of c, in ascending order.
func (idx *fieldIndex) near(c Position) []int {
	found := idx.tree.SearchIntersect(searchBounds(c, idx.radius))
	o := make([]int, len(found))
	for j, f := range found {
		o[j] = f.(*indexed).i
	}
	sort.Ints(o)
	return o
}

// field holds the read-only inputs to a concentration field calculation.
type field struct {
	sources       []EmissionSource      // active only
	interventions []CaptureIntervention // active only
	cfg           SimulationConfig
	summed        bool

	sourceIndex, interventionIndex *fieldIndex
}

func newField(sources []EmissionSource, interventions []CaptureIntervention, cfg SimulationConfig, o *fieldOptions) *field {
	f := &field{
		sources:       activeSources(sources),
		interventions: activeInterventions(interventions),
		cfg:           cfg,
		summed:        o.summed,
	}
	if o.bruteForce {
		return f
	}
	sp := make([]Position, len(f.sources))
	for i, s := range f.sources {
		sp[i] = s.Position
	}
	f.sourceIndex = newFieldIndex(sp, sourceRange)

	var maxRadius float64
	ip := make([]Position, len(f.interventions))
	for i, iv := range f.interventions {
		ip[i] = iv.Position
		maxRadius = math.Max(maxRadius, iv.CoverageRadius)
	}
	f.interventionIndex = newFieldIndex(ip, maxRadius)
	return f
}

// all returns 0, 1, ..., n-1.
func all(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Emission adds the contribution of every source within range to the
// concentration in c.
func (f *field) Emission(c *GridCell) {
	candidates := all(len(f.sources))
	if f.sourceIndex != nil {
		candidates = f.sourceIndex.near(c.Position)
	}
	for _, i := range candidates {
		s := f.sources[i]
		influence := math.Max(0, 1-distance(c.Position, s.Position)/sourceRange)
		c.CO2Level += s.EmissionRate / 1000 * influence * f.cfg.TrafficDensity
	}
}

// Capture removes the effect of every intervention covering c from the
// concentration in c. Unless the field was created with SummedCapture,
// the floor is applied after each intervention in list order.
func (f *field) Capture(c *GridCell) {
	candidates := all(len(f.interventions))
	if f.interventionIndex != nil {
		candidates = f.interventionIndex.near(c.Position)
	}
	var total float64
	for _, i := range candidates {
		iv := f.interventions[i]
		d := distance(c.Position, iv.Position)
		if d > iv.CoverageRadius {
			continue
		}
		effect := iv.CaptureRate / 1000 * (1 - d/iv.CoverageRadius)
		if f.summed {
			total += effect
			continue
		}
		c.CO2Level = math.Max(floorCO2, c.CO2Level-effect)
	}
	if f.summed {
		c.CO2Level = math.Max(floorCO2, c.CO2Level-total)
	}
}

// AirQuality sets the air quality of c from its unrounded concentration
// and then rounds both values.
func (f *field) AirQuality(c *GridCell) {
	c.AirQuality = round(airQuality(c.CO2Level))
	c.CO2Level = round(c.CO2Level)
}
