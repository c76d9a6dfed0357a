package app

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

func writeReport(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Blotter: %s\n\n", r.Blotter)
	fmt.Fprintln(tw, "ORDER\tASSET\tAMOUNT\tFILLED\tSTATUS\tREASON")
	for _, o := range r.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", o.ID, o.Asset, o.Amount, o.Filled, o.Status, o.Reason)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TRANSACTION\tASSET\tAMOUNT\tPRICE\tCOMMISSION")
	if len(r.Transactions) == 0 {
		fmt.Fprintln(tw, "(none)")
	}
	for _, t := range r.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", t.OrderID, t.Asset, t.Amount,
			strconv.FormatFloat(t.Price, 'f', 4, 64),
			strconv.FormatFloat(t.Commission, 'f', 4, 64))
	}
	return tw.Flush()
}
