package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

// Column headers of the cleaned bike-sharing CSV.
const (
	ColDate        = "Date"
	ColHour        = "Hour"
	ColWeekday     = "Weekday"
	ColCluster     = "Cluster"
	ColCasual      = "Casual Count"
	ColRegistered  = "Registered Count"
	ColTotal       = "Total Count"
	ColTemperature = "Temperature"
	ColHumidity    = "Humidity"
	ColWindSpeed   = "Wind Speed"
)

var requiredColumns = []string{
	ColDate, ColHour, ColWeekday, ColCluster,
	ColCasual, ColRegistered, ColTotal,
	ColTemperature, ColHumidity, ColWindSpeed,
}

// Integer columns are read as strings so a bad cell can be reported with its
// row instead of turning into a NaN.
var columnTypes = map[string]series.Type{
	ColDate:        series.String,
	ColHour:        series.String,
	ColWeekday:     series.String,
	ColCluster:     series.String,
	ColCasual:      series.String,
	ColRegistered:  series.String,
	ColTotal:       series.String,
	ColTemperature: series.Float,
	ColHumidity:    series.Float,
	ColWindSpeed:   series.Float,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// DecodeCSV parses the cleaned dashboard CSV into records. Unknown columns
// are ignored; a missing required column or an unparsable cell is an error.
// A header without rows decodes to no records.
func DecodeCSV(r io.Reader) ([]rental.Record, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}
	if missing := missingColumns(rows[0]); len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing columns: %s", strings.Join(missing, ", "))
	}
	if len(rows) == 1 {
		return []rental.Record{}, nil
	}

	// gota maps "NA" and friends to NaN by default, which would rewrite a
	// cluster labelled "NA". Missing readings still parse as NaN floats.
	df := dataframe.LoadRecords(rows,
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	var (
		dates      = df.Col(ColDate).Records()
		hours      = df.Col(ColHour).Records()
		weekdays   = df.Col(ColWeekday).Records()
		clusters   = df.Col(ColCluster).Records()
		casual     = df.Col(ColCasual).Records()
		registered = df.Col(ColRegistered).Records()
		total      = df.Col(ColTotal).Records()
		temp       = df.Col(ColTemperature).Float()
		humidity   = df.Col(ColHumidity).Float()
		wind       = df.Col(ColWindSpeed).Float()
	)

	records := make([]rental.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rec := rental.Record{Row: i, Cluster: strings.TrimSpace(clusters[i])}
		var err error

		if rec.Date, err = parseDate(dates[i]); err != nil {
			return nil, malformed(i, ColDate, dates[i], err)
		}
		if rec.Weekday, err = rental.ParseWeekday(weekdays[i]); err != nil {
			return nil, malformed(i, ColWeekday, weekdays[i], err)
		}

		ints := []struct {
			col string
			raw string
			dst *int
		}{
			{ColHour, hours[i], &rec.Hour},
			{ColCasual, casual[i], &rec.Casual},
			{ColRegistered, registered[i], &rec.Registered},
			{ColTotal, total[i], &rec.Total},
		}
		for _, f := range ints {
			if *f.dst, err = parseCount(f.raw); err != nil {
				return nil, malformed(i, f.col, f.raw, err)
			}
		}

		floats := []struct {
			col string
			v   float64
			dst *float64
		}{
			{ColTemperature, temp[i], &rec.Temperature},
			{ColHumidity, humidity[i], &rec.Humidity},
			{ColWindSpeed, wind[i], &rec.WindSpeed},
		}
		for _, f := range floats {
			if math.IsNaN(f.v) {
				return nil, malformed(i, f.col, "", fmt.Errorf("not a number"))
			}
			*f.dst = f.v
		}

		records = append(records, rec)
	}
	return records, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range requiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func parseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// parseCount accepts "12" as well as "12.0", which pandas writes for integer
// columns that once held a NaN.
func parseCount(s string) (int, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

func malformed(row int, col, value string, err error) error {
	return &rental.MalformedRecordError{Row: row, Field: col, Value: value, Reason: err.Error()}
}
