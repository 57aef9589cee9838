package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
	"github.com/i474232898/bike-rental-aggregation/internal/store"
)

type staticSource struct{ ds *rental.Dataset }

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(ctx context.Context) (*rental.Dataset, error) { return s.ds, nil }

func testDataset(t *testing.T) *rental.Dataset {
	t.Helper()
	d := func(s string) time.Time {
		ts, _ := time.Parse("2006-01-02", s)
		return ts
	}
	ds, err := rental.NewDataset([]rental.Record{
		{Row: 0, Date: d("2011-01-01"), Hour: 0, Weekday: rental.Saturday, Cluster: "A", Casual: 0, Registered: 10, Total: 10, Temperature: 0.2},
		{Row: 1, Date: d("2011-01-01"), Hour: 0, Weekday: rental.Saturday, Cluster: "B", Casual: 5, Registered: 15, Total: 20, Temperature: 0.3},
		{Row: 2, Date: d("2011-01-02"), Hour: 1, Weekday: rental.Sunday, Cluster: "A", Casual: 1, Registered: 4, Total: 5, Temperature: 0.4},
	})
	require.NoError(t, err)
	return ds
}

func newTestApp(t *testing.T, loaded bool) *fiber.App {
	t.Helper()
	svc := rental.NewService(store.NewMemoryStore(1), staticSource{ds: testDataset(t)})
	if loaded {
		_, err := svc.Reload(context.Background())
		require.NoError(t, err)
	}
	return NewApp(svc)
}

func get(t *testing.T, app *fiber.App, url string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestSummaryEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/summary?start=2011-01-01&end=2011-01-02")
	require.Equal(t, http.StatusOK, code)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 35, summary["totalRentals"])
	assert.EqualValues(t, 29, summary["totalRegistered"])
	assert.EqualValues(t, 6, summary["totalCasual"])

	highest := summary["highestDay"].(map[string]any)["record"].(map[string]any)
	assert.EqualValues(t, 1, highest["row"])
	assert.Equal(t, "Saturday", highest["weekday"])
}

func TestSummaryDefaultsToDatasetBounds(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/summary")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2011-01-01", body["start"])
	assert.Equal(t, "2011-01-02", body["end"])
}

func TestEmptyRangeRendersNoData(t *testing.T) {
	app := newTestApp(t, true)

	for _, url := range []string{
		"/api/v1/summary?start=2012-01-01&end=2012-01-31",
		"/api/v1/clusters?start=2011-01-02&end=2011-01-01",
	} {
		code, body := get(t, app, url)
		assert.Equal(t, http.StatusOK, code, url)
		assert.Equal(t, true, body["noData"], url)
		assert.Equal(t, noDataMessage, body["message"], url)
	}

	code, body := get(t, app, "/api/v1/usage/hourly?start=2012-01-01&end=2012-01-31")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["groups"])
}

func TestHourlyAndWeekdayEndpoints(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/usage/hourly")
	require.Equal(t, http.StatusOK, code)
	groups := body["groups"].([]any)
	require.Len(t, groups, 2)
	first := groups[0].(map[string]any)
	assert.EqualValues(t, 0, first["hour"])
	assert.EqualValues(t, 15, first["means"].(map[string]any)["total"])

	code, body = get(t, app, "/api/v1/usage/weekday")
	require.Equal(t, http.StatusOK, code)
	groups = body["groups"].([]any)
	require.Len(t, groups, 2)
	assert.Equal(t, "Saturday", groups[0].(map[string]any)["weekday"])
	assert.Equal(t, "Sunday", groups[1].(map[string]any)["weekday"])
}

func TestClustersEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/clusters")
	require.Equal(t, http.StatusOK, code)
	best := body["clusters"].(map[string]any)["best"].(map[string]any)
	assert.Equal(t, "B", best["label"])
	assert.EqualValues(t, 20, best["meanTotal"])
}

func TestRelationshipEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/relationship/temperature?start=2011-01-01&end=2011-01-01")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "temperature", body["factor"])
	assert.Len(t, body["points"], 2)

	code, _ = get(t, app, "/api/v1/relationship/pressure")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRelationshipFactorSpellings(t *testing.T) {
	app := newTestApp(t, true)

	for _, factor := range []string{"windspeed", "wind_speed", "wind-speed", "wind%20speed", "Wind%20Speed"} {
		code, body := get(t, app, "/api/v1/relationship/"+factor)
		require.Equal(t, http.StatusOK, code, factor)
		assert.Equal(t, "windspeed", body["factor"], factor)
		assert.Len(t, body["points"], 3, factor)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/dashboard?start=2011-01-02&end=2011-01-02")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["noData"])
	assert.EqualValues(t, 1, body["records"])
	assert.NotEmpty(t, body["version"])

	code, body = get(t, app, "/api/v1/dashboard?start=2013-01-01")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["noData"])
	assert.Nil(t, body["summary"])
	assert.Equal(t, []any{}, body["hourly"])
}

func TestDatasetEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/dataset")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "static", body["source"])
	assert.EqualValues(t, 3, body["records"])
	assert.Equal(t, "2011-01-01", body["minDate"])
	assert.Equal(t, "2011-01-02", body["maxDate"])
}

func TestDatasetHistoryEndpoint(t *testing.T) {
	svc := rental.NewService(store.NewMemoryStore(3), staticSource{ds: testDataset(t)})
	app := NewApp(svc)

	code, body := get(t, app, "/api/v1/dataset/history")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["snapshots"])

	first, err := svc.Reload(context.Background())
	require.NoError(t, err)
	second, err := svc.Reload(context.Background())
	require.NoError(t, err)

	code, body = get(t, app, "/api/v1/dataset/history")
	require.Equal(t, http.StatusOK, code)
	snapshots := body["snapshots"].([]any)
	require.Len(t, snapshots, 2)

	newest := snapshots[0].(map[string]any)
	assert.Equal(t, second.Version, newest["version"])
	assert.Equal(t, "static", newest["source"])
	assert.EqualValues(t, 3, newest["records"])
	assert.NotEmpty(t, newest["loadedAt"])
	assert.Equal(t, first.Version, snapshots[1].(map[string]any)["version"])
}

func TestInvalidDateIsBadRequest(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/api/v1/summary?start=yesterday")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, true, body["error"])
	assert.True(t, strings.HasPrefix(body["message"].(string), "start:"))
}

func TestNotLoadedIsUnavailable(t *testing.T) {
	app := newTestApp(t, false)

	code, _ := get(t, app, "/api/v1/summary")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = get(t, app, "/api/v1/dataset")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, true)

	code, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	get(t, app, "/api/v1/summary")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "bike_rental_request_duration_seconds")
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2011-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2011, 3, 4, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2011-03-04T22:10:00Z")
	require.NoError(t, err)
	assert.Equal(t, 22, got.Hour())

	got, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDate("03/04/2011")
	assert.Error(t, err)
}
