package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/astro-backend-go/internal/app"
	"github.com/jengzang/astro-backend-go/internal/models"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Calculate one chart and print it as JSON",
	Example: `  astro-server chart --date 1990-06-15 --time 12:00 --lat 28.6139 --lon 77.2090
  astro-server chart --date 1990-06-15 --time 17:30 --timezone Asia/Kolkata --place "New Delhi" --sidereal`,
	RunE: runChart,
}

func init() {
	addChartFlags(chartCmd)
	rootCmd.AddCommand(chartCmd)
}

func addChartFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("date", "", "birth date, YYYY-MM-DD")
	f.String("time", "12:00", "birth time, HH:MM")
	f.Float64("lat", 0, "birth latitude")
	f.Float64("lon", 0, "birth longitude")
	f.String("place", "", "birth place to geocode instead of --lat/--lon")
	f.String("timezone", "", "IANA zone of the birth time (default UTC)")
	f.Bool("sidereal", false, "use the sidereal (Lahiri) zodiac")
	f.String("question", "", "question to answer from the chart")
	_ = cmd.MarkFlagRequired("date")
}

func chartRequest(cmd *cobra.Command) (models.ChartRequest, error) {
	f := cmd.Flags()
	date, _ := f.GetString("date")
	clock, _ := f.GetString("time")
	lat, _ := f.GetFloat64("lat")
	lon, _ := f.GetFloat64("lon")
	place, _ := f.GetString("place")
	tz, _ := f.GetString("timezone")
	sidereal, _ := f.GetBool("sidereal")
	question, _ := f.GetString("question")

	req := models.ChartRequest{
		BirthDate:  date,
		BirthTime:  clock,
		BirthPlace: place,
		Timezone:   tz,
		Question:   question,
	}
	if sidereal {
		req.SystemType = "sidereal"
	}

	if place == "" {
		if !f.Changed("lat") || !f.Changed("lon") {
			return req, errors.New("either --place or both --lat and --lon are required")
		}
		y, m, d, err := models.ParseDate(date)
		if err != nil {
			return req, err
		}
		h, minute, err := models.ParseClock(clock)
		if err != nil {
			return req, err
		}
		req.Birth = &models.BirthDetails{Year: y, Month: m, Day: d, Hour: h, Minute: minute, Latitude: lat, Longitude: lon}
	}
	return req, nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	req, err := chartRequest(cmd)
	if err != nil {
		return err
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Charts.Calculate(cmd.Context(), req)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid input: %v", verr.Messages)
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
