package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

func printResult(out io.Writer, r energy.Result) {
	a := r.Assumptions
	fmt.Fprintf(out, "Climate zone %s (CDD %d, HDD %d) at $%.2f/kWh, %s efficiency\n",
		a.ClimateZone, a.CDD, a.HDD, a.RatePerKWh, a.EfficiencyLevel)
	fmt.Fprintf(out, "Home %.0f sqft, cooled %.0f sqft\n\n", a.HomeSqft, a.CoolingSqft)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tkWh\tCost\tPrimary load\t")
	for _, m := range r.Monthly {
		fmt.Fprintf(tw, "%s\t%.1f\t$%.2f\t%s\t\n", m.Month, m.KWh, m.Cost, m.PrimaryLoad)
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nAnnual:\n")
	fmt.Fprintf(out, "  Base     %10.1f kWh  $%9.2f\n", r.AnnualBaseKWh, r.AnnualBaseCost)
	fmt.Fprintf(out, "  Cooling  %10.1f kWh  $%9.2f\n", r.AnnualCoolingKWh, r.AnnualCoolingCost)
	fmt.Fprintf(out, "  Heating  %10.1f kWh  $%9.2f\n", r.AnnualHeatingKWh, r.AnnualHeatingCost)
	fmt.Fprintf(out, "  Total    %10.1f kWh  $%9.2f\n", r.AnnualTotalKWh, r.AnnualTotalCost)

	if sp := r.SolarPotential; sp != nil {
		fmt.Fprintf(out, "\nSolar: %.0f kWh/yr (%s), offset %.1f%% of usage\n",
			sp.AnnualProductionKWh, sp.Source, sp.OffsetPct)
	}
}
