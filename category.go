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

// SourceCategory is the kind of activity an EmissionSource represents.
// It determines which time-of-day profile is applied to the source.
type SourceCategory int

// Source categories.
const (
	Transportation SourceCategory = iota
	Industrial
	Residential
	Commercial
)

// SourceCategories lists every SourceCategory in declaration order.
var SourceCategories = []SourceCategory{Transportation, Industrial, Residential, Commercial}

var sourceCategoryNames = map[SourceCategory]string{
	Transportation: "transportation",
	Industrial:     "industrial",
	Residential:    "residential",
	Commercial:     "commercial",
}

func (c SourceCategory) String() string {
	if s, ok := sourceCategoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("SourceCategory(%d)", int(c))
}

// Valid reports whether c is one of the declared categories.
func (c SourceCategory) Valid() bool {
	_, ok := sourceCategoryNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (c SourceCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("urbanco2: invalid source category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *SourceCategory) UnmarshalText(b []byte) error {
	v, err := ParseSourceCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseSourceCategory returns the SourceCategory whose text form is s.
func ParseSourceCategory(s string) (SourceCategory, error) {
	for c, name := range sourceCategoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("urbanco2: unknown source category %q; valid options are "+
		"transportation, industrial, residential, and commercial", s)
}

// InterventionCategory is the capture technology used by a
// CaptureIntervention.
type InterventionCategory int

// Intervention categories.
const (
	RoadsideCapture InterventionCategory = iota
	VerticalGarden
	Biofilter
	UrbanForest
	GreenRoof
)

// InterventionCategories lists every InterventionCategory in declaration order.
var InterventionCategories = []InterventionCategory{
	RoadsideCapture, VerticalGarden, Biofilter, UrbanForest, GreenRoof,
}

var interventionCategoryNames = map[InterventionCategory]string{
	RoadsideCapture: "roadside-capture",
	VerticalGarden:  "vertical-garden",
	Biofilter:       "biofilter",
	UrbanForest:     "urban-forest",
	GreenRoof:       "green-roof",
}

func (c InterventionCategory) String() string {
	if s, ok := interventionCategoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("InterventionCategory(%d)", int(c))
}

// Valid reports whether c is one of the declared categories.
func (c InterventionCategory) Valid() bool {
	_, ok := interventionCategoryNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (c InterventionCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("urbanco2: invalid intervention category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *InterventionCategory) UnmarshalText(b []byte) error {
	v, err := ParseInterventionCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseInterventionCategory returns the InterventionCategory whose text form is s.
func ParseInterventionCategory(s string) (InterventionCategory, error) {
	for c, name := range interventionCategoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("urbanco2: unknown intervention category %q; valid options are "+
		"roadside-capture, vertical-garden, biofilter, urban-forest, and green-roof", s)
}
