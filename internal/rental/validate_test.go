package rental_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

func TestValidate(t *testing.T) {
	require.NoError(t, rental.Validate(week().Records()))
	require.NoError(t, rental.Validate(nil))

	tests := []struct {
		name   string
		mutate func(r *rental.Record)
		field  string
	}{
		{"hour too high", func(r *rental.Record) { r.Hour = 24 }, "Hour"},
		{"negative hour", func(r *rental.Record) { r.Hour = -1 }, "Hour"},
		{"negative casual", func(r *rental.Record) { r.Casual = -3 }, "Casual"},
		{"negative registered", func(r *rental.Record) { r.Registered = -1 }, "Registered"},
		{"negative total", func(r *rental.Record) { r.Total = -1 }, "Total"},
		{"unknown weekday", func(r *rental.Record) { r.Weekday = 9 }, "Weekday"},
		{"missing date", func(r *rental.Record) { r.Date = time.Time{} }, "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := week().Records()
			records[5].Row = 17
			tt.mutate(&records[5])
			err := rental.Validate(records)
			require.Error(t, err)
			assert.ErrorIs(t, err, rental.ErrMalformedRecord)

			var merr *rental.MalformedRecordError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, 17, merr.Row)
			assert.Equal(t, tt.field, merr.Field)
		})
	}
}

func TestNewDatasetRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *rental.Record)
		field  string
	}{
		{"hour out of range", func(r *rental.Record) { r.Hour = 24 }, "Hour"},
		{"weekday out of range", func(r *rental.Record) { r.Weekday = 9 }, "Weekday"},
		{"negative count", func(r *rental.Record) { r.Total = -5 }, "Total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := week().Records()
			records[2].Row = 4
			tt.mutate(&records[2])

			ds, err := rental.NewDataset(records)
			assert.Nil(t, ds)
			require.ErrorIs(t, err, rental.ErrMalformedRecord)

			var merr *rental.MalformedRecordError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, 4, merr.Row)
			assert.Equal(t, tt.field, merr.Field)
		})
	}
}
