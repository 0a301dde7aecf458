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
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Lattice is a rectangular set of evenly spaced points in geographic
// coordinates at which the concentration field is calculated.
type Lattice struct {
	MinLat, MaxLat float64 // degrees
	MinLng, MaxLng float64 // degrees

	// Step is the spacing between points in both directions [degrees].
	Step float64
}

// DefaultLattice covers lower Manhattan at roughly 200 m resolution.
var DefaultLattice = Lattice{
	MinLat: 40.74,
	MaxLat: 40.77,
	MinLng: -74.01,
	MaxLng: -73.96,
	Step:   0.002,
}

// maxLatticeCells limits the memory used by a single field.
const maxLatticeCells = 10000000

// Validate checks that l describes a non-empty lattice of no more than
// ten million points within valid geographic coordinates.
func (l Lattice) Validate() error {
	var c check
	c.within("lattice.MinLat", l.MinLat, -90, 90)
	c.within("lattice.MaxLat", l.MaxLat, -90, 90)
	c.within("lattice.MinLng", l.MinLng, -180, 180)
	c.within("lattice.MaxLng", l.MaxLng, -180, 180)
	c.positive("lattice.Step", l.Step)
	if l.MaxLat < l.MinLat {
		c.add("lattice.MaxLat", l.MaxLat, fmt.Sprintf("a value ≥ MinLat (%g)", l.MinLat))
	}
	if l.MaxLng < l.MinLng {
		c.add("lattice.MaxLng", l.MaxLng, fmt.Sprintf("a value ≥ MinLng (%g)", l.MinLng))
	}
	if err := c.err(); err != nil {
		return err
	}
	rows, cols := l.countFloat(l.MinLat, l.MaxLat), l.countFloat(l.MinLng, l.MaxLng)
	if n := rows * cols; !(n <= maxLatticeCells) {
		c.add("lattice.Step", l.Step, fmt.Sprintf("a step giving at most %d points, not %g",
			maxLatticeCells, n))
	}
	return c.err()
}

// count returns the number of points min + i*step that are ≤ max. A
// point within a billionth of a step of max is counted so that an
// endpoint that lands on max is not lost to floating point error.
func (l Lattice) count(min, max float64) int {
	return int(l.countFloat(min, max))
}

// countFloat is count before conversion to int, so that it can be checked
// against maxLatticeCells without overflowing.
func (l Lattice) countFloat(min, max float64) float64 {
	return math.Floor((max-min)/l.Step+1e-9) + 1
}

// Rows returns the number of latitude values in the lattice.
func (l Lattice) Rows() int { return l.count(l.MinLat, l.MaxLat) }

// Cols returns the number of longitude values in the lattice.
func (l Lattice) Cols() int { return l.count(l.MinLng, l.MaxLng) }

// Len returns the number of points in the lattice.
func (l Lattice) Len() int { return l.Rows() * l.Cols() }

// Position returns the location of the point at the given row (latitude
// index) and column (longitude index).
func (l Lattice) Position(row, col int) Position {
	return Position{
		Lat: l.MinLat + float64(row)*l.Step,
		Lng: l.MinLng + float64(col)*l.Step,
	}
}

// CellPolygon returns the square of side Step centered on the point at
// the given row and column.
func (l Lattice) CellPolygon(row, col int) geom.Polygon {
	p := l.Position(row, col)
	h := l.Step / 2
	return geom.Polygon{{
		{X: p.Lng - h, Y: p.Lat - h},
		{X: p.Lng + h, Y: p.Lat - h},
		{X: p.Lng + h, Y: p.Lat + h},
		{X: p.Lng - h, Y: p.Lat + h},
		{X: p.Lng - h, Y: p.Lat - h},
	}}
}
