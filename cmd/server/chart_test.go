package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseChartFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "chart"}
	addChartFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestChartRequestFromCoordinates(t *testing.T) {
	cmd := parseChartFlags(t, "--date", "1990-06-15", "--time", "07:05", "--lat", "28.6", "--lon", "77.2", "--sidereal")

	req, err := chartRequest(cmd)
	require.NoError(t, err)
	require.NotNil(t, req.Birth)
	assert.Equal(t, 1990, req.Birth.Year)
	assert.Equal(t, 7, req.Birth.Hour)
	assert.Equal(t, 5, req.Birth.Minute)
	assert.InDelta(t, 77.2, req.Birth.Longitude, 1e-9)
	assert.Equal(t, "sidereal", req.SystemType)
}

func TestChartRequestFromPlace(t *testing.T) {
	cmd := parseChartFlags(t, "--date", "1990-06-15", "--place", "New Delhi", "--timezone", "Asia/Kolkata")

	req, err := chartRequest(cmd)
	require.NoError(t, err)
	assert.Nil(t, req.Birth)
	assert.Equal(t, "New Delhi", req.BirthPlace)
	assert.Equal(t, "12:00", req.BirthTime)
	assert.Equal(t, "Asia/Kolkata", req.Timezone)
	assert.Empty(t, req.SystemType)
}

func TestChartRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no location", []string{"--date", "1990-06-15"}},
		{"latitude only", []string{"--date", "1990-06-15", "--lat", "10"}},
		{"bad date", []string{"--date", "15/06/1990", "--lat", "1", "--lon", "1"}},
		{"bad time", []string{"--date", "1990-06-15", "--time", "7pm", "--lat", "1", "--lon", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chartRequest(parseChartFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}
