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
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/urbanco2"
	"github.com/spf13/cobra"
)

// newLogger returns a logger writing text to w at the given level.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("urbanco2: invalid LogLevel: %v", err)
	}
	return &logrus.Logger{
		Out:       w,
		Formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}, nil
}

// Run runs the model.
//
// CobraCommand is the cobra.Command instance where Run is called from.
// Log messages are written to its output.
//
// LogFile is the path to an additional log file location. If it is
// empty, messages are only written to the command output.
//
// OutputFile is the path where the concentration field is written, as
// GeoJSON if it ends in .geojson or .json and as a shapefile otherwise.
// If it is empty, the field is not written.
//
// OutputVariables specifies which variables should be included in the
// output file.
//
// ReportFile is the path where a spreadsheet report is written. If it is
// empty, no report is written.
func Run(CobraCommand *cobra.Command, LogFile, LogLevel string, s urbanco2.Scenario, l urbanco2.Lattice,
	OutputFile string, OutputVariables map[string]string, ReportFile string, opts ...urbanco2.FieldOption) (*urbanco2.Result, error) {

	startTime := time.Now()

	var w io.Writer = CobraCommand.OutOrStdout()
	if LogFile != "" {
		logfile, err := os.Create(LogFile)
		if err != nil {
			return nil, fmt.Errorf("urbanco2: problem creating log file: %v", err)
		}
		defer logfile.Close()
		w = io.MultiWriter(w, logfile)
	}
	log, err := newLogger(w, LogLevel)
	if err != nil {
		return nil, err
	}

	var o *urbanco2.Outputter
	if OutputFile != "" {
		log.Info("Parsing output variable expressions...")
		if o, err = urbanco2.NewOutputter(OutputVariables, nil); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"sources":       len(s.Sources),
		"interventions": len(s.Interventions),
		"cells":         l.Len(),
	}).Info("Running simulation...")

	r, err := s.Evaluate(l, opts...)
	if err != nil {
		return nil, err
	}
	logResult(log, s, r)

	if o != nil {
		ext := strings.ToLower(filepath.Ext(OutputFile))
		if ext == ".geojson" || ext == ".json" {
			err = writeGeoJSON(o, OutputFile, l, r.Cells)
		} else {
			err = o.WriteShapefile(OutputFile, l, r.Cells)
		}
		if err != nil {
			return nil, err
		}
		log.WithField("file", OutputFile).Info("Wrote concentration field")
	}
	if ReportFile != "" {
		if err := WriteReport(ReportFile, s, r); err != nil {
			return nil, err
		}
		log.WithField("file", ReportFile).Info("Wrote report")
	}

	log.WithField("elapsed", time.Since(startTime).String()).Info("Simulation finished")
	return r, nil
}

func writeGeoJSON(o *urbanco2.Outputter, path string, l urbanco2.Lattice, cells []urbanco2.GridCell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("urbanco2: creating output file: %v", err)
	}
	if err := o.WriteGeoJSON(f, l, cells); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func logResult(log logrus.FieldLogger, s urbanco2.Scenario, r *urbanco2.Result) {
	m := r.Metrics
	log.WithFields(logrus.Fields{
		"emissions":          m.TotalEmissions,
		"capture":            m.TotalCapture,
		"net":                m.NetEmissions,
		"reduction_percent":  fmt.Sprintf("%.1f", urbanco2.ReductionPercent(m)),
		"aqi":                m.AirQualityIndex,
		"aqi_category":       urbanco2.ClassifyAQI(m.AirQualityIndex).String(),
		"cost_effectiveness": m.CostEffectiveness,
		"interventions":      m.InterventionCount,
	}).Info("Performance metrics")

	fs := urbanco2.SummarizeField(r.Cells)
	log.WithFields(logrus.Fields{
		"min_co2":   fs.MinCO2,
		"mean_co2":  fmt.Sprintf("%.2f", fs.MeanCO2),
		"p95_co2":   fs.P95CO2,
		"max_co2":   fs.MaxCO2,
		"unhealthy": fs.Unhealthy,
	}).Info("Concentration field")

	for _, iv := range s.Interventions {
		imp, err := urbanco2.PredictImpact(iv, s.Config)
		if err != nil {
			log.WithError(err).WithField("id", iv.ID).Warn("Skipping impact projection")
			continue
		}
		log.WithFields(logrus.Fields{
			"id":           iv.ID,
			"active":       iv.Active,
			"reduction":    imp.CO2Reduction,
			"cost_benefit": costBenefit(imp),
		}).Debug("Intervention impact")
	}
	for _, h := range urbanco2.HourlyProjection(m) {
		log.WithFields(logrus.Fields{
			"hour":      h.Hour,
			"emissions": h.Emissions,
			"capture":   h.Capture,
			"net":       h.Net,
		}).Debug("Hourly projection")
	}
}

// costBenefit formats the cost-benefit ratio of imp.
func costBenefit(imp urbanco2.Impact) string {
	if imp.Unbounded() {
		return "unbounded"
	}
	return fmt.Sprintf("%.2f", imp.CostBenefit)
}

// Predict writes the projected impact of iv under cfg to w.
func Predict(w io.Writer, iv urbanco2.CaptureIntervention, cfg urbanco2.SimulationConfig) (urbanco2.Impact, error) {
	imp, err := urbanco2.PredictImpact(iv, cfg)
	if err != nil {
		return imp, err
	}
	fmt.Fprintf(w, "%s at %v\n", iv.Name, iv.Position)
	fmt.Fprintf(w, "CO₂ reduction:     %g kg/hour\n", imp.CO2Reduction)
	fmt.Fprintf(w, "AQI improvement:   %g\n", imp.AQIImprovement)
	fmt.Fprintf(w, "Annual capture:    %.3g\n", imp.AnnualCaptureMass())
	fmt.Fprintf(w, "Ten-year cost:     %g\n", imp.TotalCost)
	fmt.Fprintf(w, "Cost per kg/year:  %s\n", costBenefit(imp))
	return imp, nil
}
