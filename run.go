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
	"runtime"
	"sync"
)

// CellCalculator is a step in the calculation of the concentration in a
// single cell. Calculators for a cell are run in order.
type CellCalculator func(c *GridCell)

type fieldOptions struct {
	nprocs     int
	summed     bool
	bruteForce bool
}

// FieldOption changes how GenerateField runs.
type FieldOption func(*fieldOptions)

// Parallelism sets the number of goroutines used to calculate cells. The
// default is runtime.GOMAXPROCS(0). Values less than one select the
// default.
func Parallelism(n int) FieldOption {
	return func(o *fieldOptions) { o.nprocs = n }
}

// SummedCapture makes GenerateField sum the capture effects of every
// intervention covering a cell before applying the 380 ppm floor once,
// rather than applying the floor after each intervention in list order.
// Capture effects are never negative, so the two give the same
// concentrations up to floating point error.
func SummedCapture() FieldOption {
	return func(o *fieldOptions) { o.summed = true }
}

// BruteForce disables the spatial index so that every active source and
// intervention is considered for every cell. Results are identical to
// the default; it exists for checking and benchmarking.
func BruteForce() FieldOption {
	return func(o *fieldOptions) { o.bruteForce = true }
}

// GenerateField calculates the CO₂ concentration and air quality at every
// point of l, returning cells in row-major order with latitude as the
// outer loop. Only active sources and interventions contribute.
func GenerateField(l Lattice, sources []EmissionSource, interventions []CaptureIntervention, cfg SimulationConfig, opts ...FieldOption) ([]GridCell, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := validateInputs(sources, interventions, cfg); err != nil {
		return nil, err
	}
	o := &fieldOptions{nprocs: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(o)
	}
	if o.nprocs < 1 {
		o.nprocs = runtime.GOMAXPROCS(0)
	}

	f := newField(sources, interventions, cfg, o)

	rows, cols := l.Rows(), l.Cols()
	cells := make([]GridCell, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells[r*cols+c] = GridCell{
				Row:      r,
				Col:      c,
				Position: l.Position(r, c),
				CO2Level: backgroundCO2,
			}
		}
	}
	Calculations(o.nprocs, cells, f.Emission, f.Capture, f.AirQuality)
	return cells, nil
}

// Calculations runs the calculators on every cell using nprocs
// goroutines, each of which handles every nprocs-th cell. It returns
// once every cell is finished.
func Calculations(nprocs int, cells []GridCell, calculators ...CellCalculator) {
	if nprocs < 1 {
		nprocs = 1
	}
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for ii := pp; ii < len(cells); ii += nprocs {
				c := &cells[ii]
				for _, f := range calculators {
					f(c)
				}
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
}
