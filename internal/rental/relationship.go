package rental

import (
	"fmt"
	"strings"
)

// Factor is an environmental reading that can be plotted against rentals.
type Factor string

const (
	FactorTemperature Factor = "temperature"
	FactorHumidity    Factor = "humidity"
	FactorWindSpeed   Factor = "windspeed"
)

// ParseFactor maps "temperature", "humidity" and "windspeed" (also
// "wind_speed" and "wind-speed") to a Factor.
func ParseFactor(s string) (Factor, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("_", "", "-", "", " ", "").Replace(v)
	switch Factor(v) {
	case FactorTemperature, FactorHumidity, FactorWindSpeed:
		return Factor(v), nil
	}
	return "", fmt.Errorf("unknown factor %q", s)
}

func (f Factor) value(r Record) float64 {
	switch f {
	case FactorHumidity:
		return r.Humidity
	case FactorWindSpeed:
		return r.WindSpeed
	default:
		return r.Temperature
	}
}

// Point pairs an environmental reading with the record's Total.
type Point struct {
	X     float64 `json:"x"`
	Total int     `json:"total"`
}

// Relationship returns one point per record, in dataset order.
func Relationship(ds *Dataset, f Factor) []Point {
	if ds.Len() == 0 {
		return nil
	}
	out := make([]Point, 0, ds.Len())
	for _, r := range ds.records {
		out = append(out, Point{X: f.value(r), Total: r.Total})
	}
	return out
}
