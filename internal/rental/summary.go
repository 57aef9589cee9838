package rental

import "fmt"

// Extremum identifies the record holding a minimum or maximum Total.
// Position is the index within the summarized dataset.
type Extremum struct {
	Position int    `json:"position"`
	Record   Record `json:"record"`
}

// Summary holds the headline statistics for a dataset.
type Summary struct {
	Records         int      `json:"records"`
	TotalRentals    int      `json:"totalRentals"`
	TotalRegistered int      `json:"totalRegistered"`
	TotalCasual     int      `json:"totalCasual"`
	LowestDay       Extremum `json:"lowestDay"`
	HighestDay      Extremum `json:"highestDay"`
	AvgPerDay       float64  `json:"avgPerDay"`
}

// Totals sums the three count fields. An empty dataset sums to zero.
func Totals(ds *Dataset) (total, registered, casual int) {
	for i := 0; i < ds.Len(); i++ {
		r := ds.records[i]
		total += r.Total
		registered += r.Registered
		casual += r.Casual
	}
	return total, registered, casual
}

// Summarize computes sums, extrema and the mean Total over ds.
// Ties on the extrema resolve to the first record in dataset order.
func Summarize(ds *Dataset) (Summary, error) {
	n := ds.Len()
	if n == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", ErrEmptyInput)
	}

	s := Summary{Records: n}
	s.TotalRentals, s.TotalRegistered, s.TotalCasual = Totals(ds)

	lo, hi := 0, 0
	for i := 1; i < n; i++ {
		t := ds.records[i].Total
		if t < ds.records[lo].Total {
			lo = i
		}
		if t > ds.records[hi].Total {
			hi = i
		}
	}
	s.LowestDay = Extremum{Position: lo, Record: ds.records[lo]}
	s.HighestDay = Extremum{Position: hi, Record: ds.records[hi]}
	s.AvgPerDay = float64(s.TotalRentals) / float64(n)

	return s, nil
}
