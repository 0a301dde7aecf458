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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/urbanco2"
	"github.com/spf13/cast"
)

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again")
	}
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o, nil
}

// checkOutputFile expands any environment variables in f and makes sure
// that its directory exists. An empty f means no output is wanted.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("urbanco2: the directory of output file %s doesn't exist: %v", f, err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified and there is an output file to put it next to.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" && outputFile != "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// LatticeConfig creates a new lattice configuration from the
// information in cfg.
func LatticeConfig(cfg *viper.Viper) (urbanco2.Lattice, error) {
	l := urbanco2.Lattice{
		MinLat: cfg.GetFloat64("Lattice.MinLat"),
		MaxLat: cfg.GetFloat64("Lattice.MaxLat"),
		MinLng: cfg.GetFloat64("Lattice.MinLng"),
		MaxLng: cfg.GetFloat64("Lattice.MaxLng"),
		Step:   cfg.GetFloat64("Lattice.Step"),
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("parsing lattice configuration: %v", err)
	}
	return l, nil
}

// conditions applies a named preset and an hour override to cfg. An
// empty preset or a negative hour leaves the corresponding values alone.
func conditions(cfg urbanco2.SimulationConfig, preset string, hour int) (urbanco2.SimulationConfig, error) {
	if preset != "" {
		p, err := urbanco2.PresetNamed(preset)
		if err != nil {
			return cfg, err
		}
		cfg = p.Config
	}
	if hour >= 0 {
		cfg.TimeOfDay = hour
	}
	return cfg, urbanco2.ValidateConfig(cfg)
}

// loadScenario reads the scenario file at path and applies any preset
// and hour override to its conditions.
func loadScenario(path, preset string, hour int) (urbanco2.Scenario, error) {
	if path == "" {
		return urbanco2.Scenario{}, fmt.Errorf(`you need to specify a scenario file (for example: Scenario="scenario.toml")`)
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return urbanco2.Scenario{}, fmt.Errorf("urbanco2: opening scenario: %v", err)
	}
	defer f.Close()
	s, err := urbanco2.ReadScenario(f)
	if err != nil {
		return urbanco2.Scenario{}, err
	}
	cfg, err := conditions(s.Config, preset, hour)
	if err != nil {
		return urbanco2.Scenario{}, err
	}
	return s.WithConfig(cfg)
}

// interventionConfig creates the intervention to preview from the
// information in cfg.
func interventionConfig(cfg *viper.Viper) (urbanco2.CaptureIntervention, error) {
	c, err := urbanco2.ParseInterventionCategory(cfg.GetString("Template"))
	if err != nil {
		return urbanco2.CaptureIntervention{}, err
	}
	pos := urbanco2.Position{Lat: cfg.GetFloat64("Lat"), Lng: cfg.GetFloat64("Lng")}
	iv, err := urbanco2.NewIntervention(c, "preview", pos)
	if err != nil {
		return iv, err
	}
	if r := cfg.GetFloat64("CaptureRate"); r >= 0 {
		iv.CaptureRate = r
	}
	return iv, urbanco2.ValidateIntervention(iv)
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if v == "" {
			return make(map[string]string), nil
		}
		o := make(map[string]string)
		if err := json.NewDecoder(bytes.NewBufferString(v)).Decode(&o); err != nil {
			return nil, fmt.Errorf("urbanco2: invalid JSON for variable %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("urbanco2: invalid type for variable %s: %#v", varName, i)
	}
}
