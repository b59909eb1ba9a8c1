package energy

// monthWeight is the share of annual cooling and heating degree days that
// falls in one calendar month.
type monthWeight struct {
	Month   string
	Cooling float64
	Heating float64
}

// Typical Florida seasonal shape. The cooling column sums to 1.01 because the
// weights are published at two decimals; the drift is absorbed by the monthly
// vs annual tolerance.
var monthWeights = [12]monthWeight{
	{Month: "January", Cooling: 0.02, Heating: 0.25},
	{Month: "February", Cooling: 0.03, Heating: 0.20},
	{Month: "March", Cooling: 0.05, Heating: 0.12},
	{Month: "April", Cooling: 0.08, Heating: 0.05},
	{Month: "May", Cooling: 0.12, Heating: 0.01},
	{Month: "June", Cooling: 0.16, Heating: 0.00},
	{Month: "July", Cooling: 0.18, Heating: 0.00},
	{Month: "August", Cooling: 0.17, Heating: 0.00},
	{Month: "September", Cooling: 0.12, Heating: 0.00},
	{Month: "October", Cooling: 0.05, Heating: 0.02},
	{Month: "November", Cooling: 0.02, Heating: 0.10},
	{Month: "December", Cooling: 0.01, Heating: 0.25},
}

// MonthNames returns the calendar months in breakdown order.
func MonthNames() []string {
	names := make([]string, len(monthWeights))
	for i, w := range monthWeights {
		names[i] = w.Month
	}
	return names
}
