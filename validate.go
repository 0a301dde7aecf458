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
	"strings"
)

// ValidationError describes one input value that lies outside of the
// range the model is defined for.
type ValidationError struct {
	// Path identifies the offending value, e.g. "interventions[2].CoverageRadius".
	Path     string
	Value    float64
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("urbanco2: invalid %s = %g; expected %s", e.Path, e.Value, e.Expected)
}

// ValidationErrors holds every validation failure found in a set of inputs.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("urbanco2: %d validation errors:\n\t%s", len(e), strings.Join(msgs, "\n\t"))
}

// IsValidation reports whether err was caused by invalid model inputs.
func IsValidation(err error) bool {
	switch err.(type) {
	case ValidationErrors, *ValidationError:
		return true
	}
	return false
}

// check accumulates validation failures.
type check struct {
	errs ValidationErrors
}

func (c *check) add(path string, v float64, expected string) {
	c.errs = append(c.errs, &ValidationError{Path: path, Value: v, Expected: expected})
}

func (c *check) nonNegative(path string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		c.add(path, v, "a finite value ≥ 0")
	}
}

func (c *check) positive(path string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		c.add(path, v, "a finite value > 0")
	}
}

func (c *check) within(path string, v, lo, hi float64) {
	if math.IsNaN(v) || v < lo || v > hi {
		c.add(path, v, fmt.Sprintf("a value within [%g, %g]", lo, hi))
	}
}

func (c *check) finite(path string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.add(path, v, "a finite value")
	}
}

func (c *check) position(path string, p Position) {
	c.within(path+".Lat", p.Lat, -90, 90)
	c.within(path+".Lng", p.Lng, -180, 180)
}

func (c *check) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

func (c *check) source(path string, s EmissionSource) {
	if !s.Category.Valid() {
		c.add(path+".Category", float64(s.Category), "a declared source category")
	}
	c.position(path+".Position", s.Position)
	c.nonNegative(path+".EmissionRate", s.EmissionRate)
}

func (c *check) intervention(path string, iv CaptureIntervention) {
	if !iv.Category.Valid() {
		c.add(path+".Category", float64(iv.Category), "a declared intervention category")
	}
	c.position(path+".Position", iv.Position)
	c.nonNegative(path+".CaptureRate", iv.CaptureRate)
	c.nonNegative(path+".InstallCost", iv.InstallCost)
	c.nonNegative(path+".AnnualMaintenanceCost", iv.AnnualMaintenanceCost)
	c.positive(path+".CoverageRadius", iv.CoverageRadius)
}

func (c *check) config(path string, cfg SimulationConfig) {
	c.within(path+".WindSpeed", cfg.WindSpeed, 0, 20)
	c.within(path+".WindDirection", cfg.WindDirection, 0, 360)
	c.within(path+".Temperature", cfg.Temperature, -10, 40)
	c.within(path+".Humidity", cfg.Humidity, 10, 90)
	c.within(path+".TimeOfDay", float64(cfg.TimeOfDay), 0, 23)
	c.within(path+".TrafficDensity", cfg.TrafficDensity, 0.1, 1.5)
}

// ValidateSource checks that s is within the range the model is defined for.
func ValidateSource(s EmissionSource) error {
	var c check
	c.source("source", s)
	return c.err()
}

// ValidateIntervention checks that iv is within the range the model is
// defined for. Rates and costs must be non-negative and the coverage radius
// must be positive.
func ValidateIntervention(iv CaptureIntervention) error {
	var c check
	c.intervention("intervention", iv)
	return c.err()
}

// ValidateConfig checks that every tunable in cfg is within its declared range.
func ValidateConfig(cfg SimulationConfig) error {
	var c check
	c.config("config", cfg)
	return c.err()
}

// validateInputs checks all of the inputs to a calculation at once.
// Inactive sources and interventions are checked as well.
func validateInputs(sources []EmissionSource, interventions []CaptureIntervention, cfg SimulationConfig) error {
	var c check
	for i, s := range sources {
		c.source(fmt.Sprintf("sources[%d]", i), s)
	}
	for i, iv := range interventions {
		c.intervention(fmt.Sprintf("interventions[%d]", i), iv)
	}
	c.config("config", cfg)
	return c.err()
}
