package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
	"github.com/i474232898/bike-rental-aggregation/internal/store"
)

var validate = validator.New()

const noDataMessage = "no data in range"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *rental.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dataset", func(c *fiber.Ctx) error {
		snap, err := service.Latest()
		if err != nil {
			return storeError(err)
		}
		resp := fiber.Map{
			"version":  snap.Version,
			"source":   snap.Source,
			"loadedAt": snap.LoadedAt,
			"records":  snap.Dataset.Len(),
		}
		if lo, hi, ok := snap.Dataset.DateBounds(); ok {
			resp["minDate"] = lo.Format(dateLayout)
			resp["maxDate"] = hi.Format(dateLayout)
		}
		return c.JSON(resp)
	})

	v1.Get("/dataset/history", func(c *fiber.Ctx) error {
		history := service.History()
		entries := make([]fiber.Map, 0, len(history))
		for _, snap := range history {
			entries = append(entries, fiber.Map{
				"version":  snap.Version,
				"source":   snap.Source,
				"loadedAt": snap.LoadedAt,
				"records":  snap.Dataset.Len(),
			})
		}
		return c.JSON(fiber.Map{"snapshots": entries})
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		summary, err := rental.Summarize(sel.Dataset)
		if errors.Is(err, rental.ErrEmptyInput) {
			return noData(c, sel)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to summarize rentals")
		}
		return c.JSON(fiber.Map{
			"start":   sel.Start.Format(dateLayout),
			"end":     sel.End.Format(dateLayout),
			"summary": summary,
		})
	})

	v1.Get("/usage/hourly", func(c *fiber.Ctx) error {
		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"start":  sel.Start.Format(dateLayout),
			"end":    sel.End.Format(dateLayout),
			"groups": nonNil(rental.ByHour(sel.Dataset)),
		})
	})

	v1.Get("/usage/weekday", func(c *fiber.Ctx) error {
		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"start":  sel.Start.Format(dateLayout),
			"end":    sel.End.Format(dateLayout),
			"groups": nonNil(rental.ByWeekday(sel.Dataset)),
		})
	})

	v1.Get("/clusters", func(c *fiber.Ctx) error {
		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		clusters, err := rental.ByCluster(sel.Dataset)
		if errors.Is(err, rental.ErrEmptyInput) {
			return noData(c, sel)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to group clusters")
		}
		return c.JSON(fiber.Map{
			"start":    sel.Start.Format(dateLayout),
			"end":      sel.End.Format(dateLayout),
			"clusters": clusters,
		})
	})

	v1.Get("/relationship/:factor", func(c *fiber.Ctx) error {
		q := factorQuery{Factor: c.Params("factor")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "factor is required")
		}
		factor, err := rental.ParseFactor(q.Factor)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error()+"; use temperature, humidity or windspeed")
		}

		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"start":  sel.Start.Format(dateLayout),
			"end":    sel.End.Format(dateLayout),
			"factor": factor,
			"points": nonNil(rental.Relationship(sel.Dataset, factor)),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		sel, err := selectRange(c, service)
		if err != nil {
			return err
		}
		d := rental.BuildDashboard(sel)
		d.Hourly = nonNil(d.Hourly)
		d.Weekday = nonNil(d.Weekday)
		return c.JSON(d)
	})
}

// factorQuery only checks presence; rental.ParseFactor owns the accepted
// spellings.
type factorQuery struct {
	Factor string `validate:"required"`
}

// rangeQuery holds the optional date bounds of a query. Zero means "use the
// dataset's own bound".
type rangeQuery struct {
	Start time.Time
	End   time.Time
}

func (q *rangeQuery) bind(c *fiber.Ctx) error {
	var err error
	if q.Start, err = parseDate(c.Query("start")); err != nil {
		return errors.New("start: " + err.Error())
	}
	if q.End, err = parseDate(c.Query("end")); err != nil {
		return errors.New("end: " + err.Error())
	}
	return nil
}

func selectRange(c *fiber.Ctx, service *rental.Service) (rental.Selection, error) {
	var q rangeQuery
	if err := q.bind(c); err != nil {
		return rental.Selection{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	sel, err := service.Select(q.Start, q.End)
	if err != nil {
		return rental.Selection{}, storeError(err)
	}
	return sel, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded yet")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read dataset")
}

// noData renders the neutral state for a range without records.
func noData(c *fiber.Ctx, sel rental.Selection) error {
	return c.JSON(fiber.Map{
		"start":   sel.Start.Format(dateLayout),
		"end":     sel.End.Format(dateLayout),
		"noData":  true,
		"message": noDataMessage,
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD, RFC3339 or unix seconds. Empty input yields
// the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(dateLayout, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD, RFC3339 or unix seconds")
}
