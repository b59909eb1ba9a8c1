package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
	"github.com/i474232898/gridsight-site-planner/internal/solar"
)

type options struct {
	HomeSqft    float64
	CooledSqft  float64
	Lat         float64
	Efficiency  string
	SolarKWh    float64
	EstimateSun bool
	JSON        bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "energy-estimate",
		Short: "Estimate monthly and yearly residential energy usage",
		Example: "  energy-estimate --sqft 1800 --lat 28.5\n" +
			"  energy-estimate --sqft 2400 --cooled-sqft 2000 --lat 25.7 --efficiency poor --solar-kwh 9000 --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, cmd.Flags().Changed("cooled-sqft"), out)
		},
	}
	cmd.SetOut(out)
	bindFlags(cmd.Flags(), opts)
	_ = cmd.MarkFlagRequired("lat")

	return cmd
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.Float64VarP(&o.HomeSqft, "sqft", "s", 2400, "Home living area in sqft")
	fs.Float64Var(&o.CooledSqft, "cooled-sqft", 0, "Cooled area in sqft (defaults to --sqft)")
	fs.Float64Var(&o.Lat, "lat", 0, "Site latitude in decimal degrees")
	fs.StringVarP(&o.Efficiency, "efficiency", "e", string(energy.TierStandard), "Efficiency level: efficient, standard or poor")
	fs.Float64Var(&o.SolarKWh, "solar-kwh", 0, "Annual solar production in kWh to report an offset against")
	fs.BoolVar(&o.EstimateSun, "estimate-solar", false, "Use the latitude-based solar estimate when --solar-kwh is not set")
	fs.BoolVar(&o.JSON, "json", false, "Print the result as JSON")
}

func run(o *options, cooledSet bool, out io.Writer) error {
	if !(o.HomeSqft > 0) || math.IsInf(o.HomeSqft, 0) {
		return fmt.Errorf("--sqft must be a positive number")
	}
	if math.IsNaN(o.Lat) || o.Lat < -90 || o.Lat > 90 {
		return fmt.Errorf("--lat must be between -90 and 90")
	}

	tier, err := energy.ParseTier(o.Efficiency)
	if err != nil {
		return err
	}

	in := energy.Input{
		FloorAreaSqft: o.HomeSqft,
		Latitude:      o.Lat,
		Tier:          tier,
	}
	if cooledSet {
		if !(o.CooledSqft > 0) || math.IsInf(o.CooledSqft, 0) {
			return fmt.Errorf("--cooled-sqft must be a positive number")
		}
		in.CooledAreaSqft = &o.CooledSqft
	}

	switch {
	case o.SolarKWh > 0:
		in.Solar = &energy.SolarPotential{AnnualProductionKWh: o.SolarKWh, Source: "manual"}
		in.IncludeSolar = true
	case o.EstimateSun:
		zone := energy.ResolveZone(o.Lat)
		sp := solar.EstimateFromLatitude(o.Lat, zone.RatePerKWh)
		in.Solar = &sp
		in.IncludeSolar = true
	}

	res, err := energy.Estimate(in)
	if err != nil {
		return err
	}

	if o.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res)
	return nil
}
