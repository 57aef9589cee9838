package rental

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week whose natural order is calendar order,
// Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of Monday..Sunday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	w, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = w
	return nil
}

// WeekdayOf converts a time.Weekday (Sunday == 0) to a Weekday.
func WeekdayOf(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}

// ParseWeekday accepts full names, three letter abbreviations and the digits
// 0..6, where 0 is Sunday as in the public bike-sharing dataset.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday number %d out of range 0-6", n)
		}
		return WeekdayOf(time.Weekday(n)), nil
	}
	lv := strings.ToLower(v)
	for i, name := range weekdayNames {
		ln := strings.ToLower(name)
		if lv == ln || (len(lv) == 3 && lv == ln[:3]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Record is one hourly observation of rental activity plus its context.
type Record struct {
	// Row is the zero-based row number in the source the record was read from.
	Row     int       `json:"row"`
	Date    time.Time `json:"date" validate:"required"`
	Hour    int       `json:"hour" validate:"gte=0,lte=23"`
	Weekday Weekday   `json:"weekday" validate:"gte=0,lte=6"`
	Cluster string    `json:"cluster"`

	Casual     int `json:"casual" validate:"gte=0"`
	Registered int `json:"registered" validate:"gte=0"`
	Total      int `json:"total" validate:"gte=0"`

	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// DateOf truncates t to its calendar day (in t's own location) and returns
// midnight UTC of that day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dataset is an immutable, ordered collection of records. A nil *Dataset is
// an empty dataset.
type Dataset struct {
	records []Record
}

// NewDataset validates records and copies them into a new Dataset,
// normalizing each Date to its calendar day. A record that fails Validate
// rejects the whole dataset with a *MalformedRecordError.
func NewDataset(records []Record) (*Dataset, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	for i := range cp {
		cp[i].Date = DateOf(cp[i].Date)
	}
	return &Dataset{records: cp}, nil
}

func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.records)
}

// At returns the record at position i. It panics if i is out of range.
func (ds *Dataset) At(i int) Record {
	return ds.records[i]
}

// Records returns a copy of the records in dataset order.
func (ds *Dataset) Records() []Record {
	if ds.Len() == 0 {
		return nil
	}
	cp := make([]Record, len(ds.records))
	copy(cp, ds.records)
	return cp
}

// DateBounds returns the earliest and latest record dates. ok is false for an
// empty dataset.
func (ds *Dataset) DateBounds() (min, max time.Time, ok bool) {
	if ds.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = ds.records[0].Date, ds.records[0].Date
	for _, r := range ds.records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, true
}
