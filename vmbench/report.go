package vmbench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable writes the report as an aligned table, one row per backend,
// with the speedup of each backend's median over the baseline's.
func (r *Report) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "host: %s\nprogram: %d ops\n\n", r.Host, len(r.Program)); err != nil {
		return err
	}

	var base Result
	for _, res := range r.Results {
		if res.Backend == "baseline" {
			base = res
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "backend\truns\tmean\tp50\tp90\tp99\tspeedup\t")
	for _, res := range r.Results {
		speedup := "-"
		if base.P50 > 0 && res.P50 > 0 {
			speedup = fmt.Sprintf("%.2fx", float64(base.P50)/float64(res.P50))
		}
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%v\t%v\t%s\t\n",
			res.Backend, res.Runs, res.Mean, res.P50, res.P90, res.P99, speedup)
	}
	return tw.Flush()
}
