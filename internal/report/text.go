// Package report renders a dashboard as a plain text report for terminals.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

const dateLayout = "2006-01-02"

// WriteText writes d as aligned text sections. A range without records
// renders a single "no data in range" line instead of the statistics.
func WriteText(w io.Writer, d rental.Dashboard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Bike Sharing Dashboard\t%s .. %s\n", d.Start.Format(dateLayout), d.End.Format(dateLayout))
	fmt.Fprintf(tw, "Records\t%d\n", d.Records)
	if d.NoData || d.Summary == nil {
		fmt.Fprintln(tw, "\nno data in range")
		return tw.Flush()
	}

	s := d.Summary
	fmt.Fprintln(tw, "\nDaily Rentals")
	fmt.Fprintf(tw, "Total Rentals\t%d\n", s.TotalRentals)
	fmt.Fprintf(tw, "Registered\t%d\n", s.TotalRegistered)
	fmt.Fprintf(tw, "Casual\t%d\n", s.TotalCasual)
	fmt.Fprintf(tw, "Lowest Rentals Day\t%s\n", describe(s.LowestDay))
	fmt.Fprintf(tw, "Highest Rentals Day\t%s\n", describe(s.HighestDay))
	fmt.Fprintf(tw, "Average Rentals per Day\t%.2f\n", s.AvgPerDay)

	fmt.Fprintln(tw, "\nUsage per Hour")
	fmt.Fprintln(tw, "Hour\tCasual\tRegistered\tTotal")
	for _, h := range d.Hourly {
		fmt.Fprintf(tw, "%02d\t%.2f\t%.2f\t%.2f\n", h.Hour, h.Means.Casual, h.Means.Registered, h.Means.Total)
	}

	fmt.Fprintln(tw, "\nUsage per Day")
	fmt.Fprintln(tw, "Weekday\tCasual\tRegistered\tTotal")
	for _, wd := range d.Weekday {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n", wd.Weekday, wd.Means.Casual, wd.Means.Registered, wd.Means.Total)
	}

	if d.Clusters != nil {
		fmt.Fprintln(tw, "\nBinning Analysis")
		fmt.Fprintln(tw, "Cluster\tRecords\tMean Total")
		for _, g := range d.Clusters.Groups {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", g.Label, g.Records, g.MeanTotal)
		}
		fmt.Fprintf(tw, "Cluster with Highest Avg Users\tCluster %s\t%.2f\n", d.Clusters.Best.Label, d.Clusters.Best.MeanTotal)
	}

	return tw.Flush()
}

func describe(e rental.Extremum) string {
	r := e.Record
	return fmt.Sprintf("row %d (%s %02d:00, %d rentals)", r.Row, r.Date.Format(dateLayout), r.Hour, r.Total)
}
