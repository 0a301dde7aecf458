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

import "fmt"

// Scenario is a snapshot of the inputs to the model. Methods that change
// a scenario return a new one and leave the receiver, including its
// slices, untouched, so a Scenario can be shared between goroutines.
type Scenario struct {
	Sources       []EmissionSource
	Interventions []CaptureIntervention
	Config        SimulationConfig
}

// NewScenario returns a scenario holding copies of sources and
// interventions.
func NewScenario(sources []EmissionSource, interventions []CaptureIntervention, cfg SimulationConfig) Scenario {
	return Scenario{
		Sources:       append([]EmissionSource(nil), sources...),
		Interventions: append([]CaptureIntervention(nil), interventions...),
		Config:        cfg,
	}
}

func (s Scenario) withInterventions(ivs []CaptureIntervention) Scenario {
	return Scenario{
		Sources:       append([]EmissionSource(nil), s.Sources...),
		Interventions: ivs,
		Config:        s.Config,
	}
}

func (s Scenario) interventionIndex(id string) (int, error) {
	for i, iv := range s.Interventions {
		if iv.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("urbanco2: no intervention with ID %q", id)
}

// AddIntervention returns a copy of s with iv appended to its
// interventions. The ID of iv must be unique within s.
func (s Scenario) AddIntervention(iv CaptureIntervention) (Scenario, error) {
	if _, err := s.interventionIndex(iv.ID); err == nil {
		return Scenario{}, fmt.Errorf("urbanco2: duplicate intervention ID %q", iv.ID)
	}
	if err := ValidateIntervention(iv); err != nil {
		return Scenario{}, err
	}
	ivs := make([]CaptureIntervention, len(s.Interventions), len(s.Interventions)+1)
	copy(ivs, s.Interventions)
	return s.withInterventions(append(ivs, iv)), nil
}

// ToggleIntervention returns a copy of s with the active flag of the
// intervention with the given ID inverted.
func (s Scenario) ToggleIntervention(id string) (Scenario, error) {
	i, err := s.interventionIndex(id)
	if err != nil {
		return Scenario{}, err
	}
	ivs := append([]CaptureIntervention(nil), s.Interventions...)
	ivs[i].Active = !ivs[i].Active
	return s.withInterventions(ivs), nil
}

// RemoveIntervention returns a copy of s without the intervention with
// the given ID.
func (s Scenario) RemoveIntervention(id string) (Scenario, error) {
	i, err := s.interventionIndex(id)
	if err != nil {
		return Scenario{}, err
	}
	ivs := make([]CaptureIntervention, 0, len(s.Interventions)-1)
	ivs = append(ivs, s.Interventions[:i]...)
	ivs = append(ivs, s.Interventions[i+1:]...)
	return s.withInterventions(ivs), nil
}

// WithConfig returns a copy of s with its conditions replaced by cfg.
func (s Scenario) WithConfig(cfg SimulationConfig) (Scenario, error) {
	if err := ValidateConfig(cfg); err != nil {
		return Scenario{}, err
	}
	o := NewScenario(s.Sources, s.Interventions, cfg)
	return o, nil
}

// Result holds the outputs of the model for one scenario.
type Result struct {
	Metrics PerformanceMetrics
	Cells   []GridCell
}

// Evaluate calculates the metrics and concentration field for s over l.
func (s Scenario) Evaluate(l Lattice, opts ...FieldOption) (*Result, error) {
	m, err := CalculateMetrics(s.Sources, s.Interventions, s.Config)
	if err != nil {
		return nil, err
	}
	cells, err := GenerateField(l, s.Sources, s.Interventions, s.Config, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{Metrics: m, Cells: cells}, nil
}
