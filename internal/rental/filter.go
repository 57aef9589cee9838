package rental

import "time"

// FilterByDate returns the records whose Date lies in [start, end], both
// bounds inclusive and compared as whole calendar days. Order is preserved.
// start after end is not an error; the result is simply empty.
func FilterByDate(ds *Dataset, start, end time.Time) *Dataset {
	from, to := DateOf(start), DateOf(end)

	out := &Dataset{}
	if from.After(to) || ds.Len() == 0 {
		return out
	}

	for _, r := range ds.records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out.records = append(out.records, r)
	}
	return out
}
