package planner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/planner"
)

func TestHoursFromTimeDetails(t *testing.T) {
	tests := []struct {
		name string
		td   planner.TimeDetails
		want float64
	}{
		{"plain shift", planner.TimeDetails{Start: "08:00", End: "17:00"}, 9},
		{"with lunch break", planner.TimeDetails{Start: "08:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"}, 8},
		{"quarter hours", planner.TimeDetails{Start: "08:15", End: "12:30"}, 4.25},
		{"fractional rounding", planner.TimeDetails{Start: "09:00", End: "09:50"}, 0.83},
		{"night shift over midnight", planner.TimeDetails{Start: "22:00", End: "06:00"}, 8},
		{"night shift with break", planner.TimeDetails{Start: "22:00", End: "06:00", BreakStart: "02:00", BreakEnd: "02:30"}, 7.5},
		{"zero-length", planner.TimeDetails{Start: "08:00", End: "08:00"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := planner.HoursFromTimeDetails(tt.td)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHoursFromTimeDetails_Invalid(t *testing.T) {
	tests := []struct {
		name string
		td   planner.TimeDetails
	}{
		{"empty start", planner.TimeDetails{End: "17:00"}},
		{"garbage clock", planner.TimeDetails{Start: "8am", End: "17:00"}},
		{"break without end", planner.TimeDetails{Start: "08:00", End: "17:00", BreakStart: "12:00"}},
		{"break longer than shift", planner.TimeDetails{Start: "09:00", End: "10:00", BreakStart: "09:00", BreakEnd: "12:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planner.HoursFromTimeDetails(tt.td)
			require.Error(t, err)
			assert.True(t, errors.Is(err, planner.ErrInvalidTimeDetails))
		})
	}
}
