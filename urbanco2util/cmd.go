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

// Package urbanco2util provides the command-line interface to the
// UrbanCO2 model.
package urbanco2util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/urbanco2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to UrbanCO2.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum severity of log messages. Valid
              options are debug, info, warning, and error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Scenario",
			usage: `
              Scenario is the path to a TOML file holding the emission sources,
              capture interventions, and conditions to simulate. It can include
              environment variables. See testdata/scenario.toml for an example.`,
			shorthand:  "s",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Preset",
			usage: `
              Preset replaces the conditions in the scenario with a named
              preset. Run 'urbanco2 templates' for the available presets.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), predictCmd.Flags()},
		},
		{
			name: "TimeOfDay",
			usage: `
              TimeOfDay overrides the hour of the day (0-23) of the simulated
              conditions. Negative values leave the hour unchanged.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), predictCmd.Flags()},
		},
		{
			name: "Lattice.MinLat",
			usage: `
              Lattice.MinLat is the southern edge of the concentration field
              [degrees latitude].`,
			defaultVal: urbanco2.DefaultLattice.MinLat,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Lattice.MaxLat",
			usage: `
              Lattice.MaxLat is the northern edge of the concentration field
              [degrees latitude].`,
			defaultVal: urbanco2.DefaultLattice.MaxLat,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Lattice.MinLng",
			usage: `
              Lattice.MinLng is the western edge of the concentration field
              [degrees longitude].`,
			defaultVal: urbanco2.DefaultLattice.MinLng,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Lattice.MaxLng",
			usage: `
              Lattice.MaxLng is the eastern edge of the concentration field
              [degrees longitude].`,
			defaultVal: urbanco2.DefaultLattice.MaxLng,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Lattice.Step",
			usage: `
              Lattice.Step is the spacing between points of the concentration
              field [degrees].`,
			defaultVal: urbanco2.DefaultLattice.Step,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the concentration field should be
              written. Paths ending in .geojson or .json are written as GeoJSON;
              anything else is written as a shapefile. If empty, the field is
              summarized in the log but not written.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies the fields of the output file as a map of
              names to expressions of the cell variables CO2, AirQuality, Lat,
              Lng, Row, and Col. Names can be at most 10 characters.`,
			defaultVal: urbanco2.DefaultOutputVariables,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ReportFile",
			usage: `
              ReportFile is the path where a spreadsheet (.xlsx) summarizing the
              simulation should be written. If empty, no report is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If LogFile is left blank and an
              OutputFile is given, the log is written next to it with a .log
              extension.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Parallelism",
			usage: `
              Parallelism is the number of goroutines used to calculate the
              concentration field. Values less than one use every processor.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SummedCapture",
			usage: `
              SummedCapture specifies whether to sum the capture effects of
              overlapping interventions before applying the 380 ppm floor, rather
              than applying the floor after each one.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Template",
			usage: `
              Template is the category of the intervention to preview. Valid
              options are roadside-capture, vertical-garden, biofilter,
              urban-forest, and green-roof.`,
			shorthand:  "t",
			defaultVal: "roadside-capture",
			flagsets:   []*pflag.FlagSet{predictCmd.Flags()},
		},
		{
			name: "Lat",
			usage: `
              Lat is the latitude of the intervention to preview.`,
			defaultVal: 40.755,
			flagsets:   []*pflag.FlagSet{predictCmd.Flags()},
		},
		{
			name: "Lng",
			usage: `
              Lng is the longitude of the intervention to preview.`,
			defaultVal: -73.984,
			flagsets:   []*pflag.FlagSet{predictCmd.Flags()},
		},
		{
			name: "CaptureRate",
			usage: `
              CaptureRate overrides the capture rate [kg/hour] of the template.
              Negative values use the template's rate.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{predictCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("URBANCO2")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				json.NewEncoder(b).Encode(v)
				set.StringP(option.name, option.shorthand, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(predictCmd)
	Root.AddCommand(templatesCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("urbanco2: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "urbanco2",
	Short: "A simplified model of urban CO₂ emissions and capture.",
	Long: `UrbanCO2 estimates city-wide CO₂ emissions, the effect of carbon-capture
interventions, and a gridded CO₂ concentration field under a set of weather and
traffic conditions. Use the subcommands specified below to access the model
functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'URBANCO2_var' where 'var' is the
name of the variable to be set, with any '.' replaced by '_'.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of UrbanCO2.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "UrbanCO2 v%s\n", urbanco2.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run calculates the performance metrics and the concentration field for the
sources, interventions, and conditions in the Scenario file, logs a summary,
and optionally writes the field to OutputFile and a spreadsheet report to
ReportFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScenario(Cfg.GetString("Scenario"), Cfg.GetString("Preset"), Cfg.GetInt("TimeOfDay"))
		if err != nil {
			return err
		}
		l, err := LatticeConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		reportFile, err := checkOutputFile(Cfg.GetString("ReportFile"))
		if err != nil {
			return err
		}
		vars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(vars)
		if err != nil {
			return err
		}
		opts := []urbanco2.FieldOption{urbanco2.Parallelism(Cfg.GetInt("Parallelism"))}
		if Cfg.GetBool("SummedCapture") {
			opts = append(opts, urbanco2.SummedCapture())
		}
		_, err = Run(
			cmd,
			checkLogFile(Cfg.GetString("LogFile"), outputFile),
			Cfg.GetString("LogLevel"),
			s, l,
			outputFile, outputVars, reportFile,
			opts...,
		)
		return err
	},
	DisableAutoGenTag: true,
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Preview the impact of an intervention.",
	Long: `predict projects the standalone impact of a single capture intervention,
built from Template and placed at Lat and Lng, under the conditions given by
Preset and TimeOfDay. The projection does not depend on any other sources or
interventions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		iv, err := interventionConfig(Cfg)
		if err != nil {
			return err
		}
		cfg, err := conditions(urbanco2.DefaultConfig, Cfg.GetString("Preset"), Cfg.GetInt("TimeOfDay"))
		if err != nil {
			return err
		}
		_, err = Predict(cmd.OutOrStdout(), iv, cfg)
		return err
	},
	DisableAutoGenTag: true,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List intervention templates and condition presets.",
	Long: `templates lists the default properties of each intervention category and
the available presets of simulated conditions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "TEMPLATE\tNAME\tCAPTURE (kg/h)\tINSTALL\tMAINTENANCE/yr\tCOVERAGE (m)")
		for _, t := range urbanco2.Templates {
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\n", t.Category, t.Name, t.CaptureRate,
				t.InstallCost, t.AnnualMaintenanceCost, t.CoverageRadius)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PRESET\tWIND (m/s)\tDIRECTION\tTEMP (°C)\tHUMIDITY (%)\tHOUR\tTRAFFIC")
		for _, p := range urbanco2.Presets {
			c := p.Config
			fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%d\t%g\n", p.Name, c.WindSpeed, c.WindDirection,
				c.Temperature, c.Humidity, c.TimeOfDay, c.TrafficDensity)
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}
