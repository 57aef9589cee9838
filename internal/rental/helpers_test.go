package rental_test

import (
	"time"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// rec builds a record whose Total is casual+registered.
func rec(date string, hour int, wd rental.Weekday, cluster string, casual, registered int) rental.Record {
	return rental.Record{
		Date:       day(date),
		Hour:       hour,
		Weekday:    wd,
		Cluster:    cluster,
		Casual:     casual,
		Registered: registered,
		Total:      casual + registered,
	}
}

// dataset builds a Dataset from records that are known to be valid.
func dataset(records ...rental.Record) *rental.Dataset {
	ds, err := rental.NewDataset(records)
	if err != nil {
		panic(err)
	}
	return ds
}

// week holds two hours on each of four days, 2011-01-01 (Saturday) to
// 2011-01-04 (Tuesday).
func week() *rental.Dataset {
	return dataset(
		rec("2011-01-01", 0, rental.Saturday, "1", 3, 13),
		rec("2011-01-01", 1, rental.Saturday, "1", 8, 32),
		rec("2011-01-02", 0, rental.Sunday, "2", 1, 16),
		rec("2011-01-02", 1, rental.Sunday, "2", 4, 12),
		rec("2011-01-03", 8, rental.Monday, "3", 2, 96),
		rec("2011-01-03", 0, rental.Monday, "1", 0, 5),
		rec("2011-01-04", 8, rental.Tuesday, "3", 4, 150),
		rec("2011-01-04", 1, rental.Tuesday, "2", 0, 2),
	)
}
