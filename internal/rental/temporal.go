package rental

// CountMeans is the arithmetic mean of each count field over a group.
type CountMeans struct {
	Casual     float64 `json:"casual"`
	Registered float64 `json:"registered"`
	Total      float64 `json:"total"`
}

// HourMeans is the group of records sharing an hour of day.
type HourMeans struct {
	Hour    int        `json:"hour"`
	Records int        `json:"records"`
	Means   CountMeans `json:"means"`
}

// WeekdayMeans is the group of records sharing a weekday.
type WeekdayMeans struct {
	Weekday Weekday    `json:"weekday"`
	Records int        `json:"records"`
	Means   CountMeans `json:"means"`
}

type countSums struct {
	n                         int
	casual, registered, total int
}

func (s *countSums) add(r Record) {
	s.n++
	s.casual += r.Casual
	s.registered += r.Registered
	s.total += r.Total
}

func (s countSums) means() CountMeans {
	n := float64(s.n)
	return CountMeans{
		Casual:     float64(s.casual) / n,
		Registered: float64(s.registered) / n,
		Total:      float64(s.total) / n,
	}
}

// ByHour groups ds by Hour, ascending 0..23. Hours absent from ds are
// omitted rather than filled with zeros. An empty dataset yields nil.
func ByHour(ds *Dataset) []HourMeans {
	var buckets [24]countSums
	for i := 0; i < ds.Len(); i++ {
		r := ds.records[i]
		buckets[r.Hour].add(r)
	}

	var out []HourMeans
	for h, b := range buckets {
		if b.n == 0 {
			continue
		}
		out = append(out, HourMeans{Hour: h, Records: b.n, Means: b.means()})
	}
	return out
}

// ByWeekday groups ds by Weekday in calendar order, Monday first. Weekdays
// absent from ds are omitted. An empty dataset yields nil.
func ByWeekday(ds *Dataset) []WeekdayMeans {
	var buckets [7]countSums
	for i := 0; i < ds.Len(); i++ {
		r := ds.records[i]
		buckets[r.Weekday].add(r)
	}

	var out []WeekdayMeans
	for d, b := range buckets {
		if b.n == 0 {
			continue
		}
		out = append(out, WeekdayMeans{Weekday: Weekday(d), Records: b.n, Means: b.means()})
	}
	return out
}
