package main

import (
	"fmt"
	"io"
	"log/slog"

	"agromind/internal/detection"
	"agromind/internal/soil"
	"agromind/internal/types"
	"agromind/internal/weather"
)

// runDetection selects the image at path, if any, submits it and renders
// the outcome to w. It returns errReported when the user saw an alert or a
// failure.
func runDetection(a *app, w io.Writer, path string, logger *slog.Logger) error {
	c := detection.New(a.detection,
		detection.WithLogger(logger),
		detection.WithObserver(observe[detection.State](logger)),
	)

	if path != "" {
		image, err := detection.LoadImage(path)
		if err != nil {
			return err
		}
		c.SelectImage(image)
	}

	if err := c.Submit(a.ctx); err != nil && types.IsValidation(err) {
		alert(w, err)
		return errReported
	}

	switch s := c.State().(type) {
	case detection.Detected:
		fmt.Fprintf(w, "Disease: %s\n", s.Prediction.Disease)
		fmt.Fprintf(w, "Recommendation: %s\n", s.Prediction.Recommendation)
	case detection.Failed:
		fmt.Fprintf(w, "! %s\n", s.Message)
		return errReported
	}
	return nil
}

// runRecommendation fills the soil controller from flags, submits and
// renders the outcome to w.
func runRecommendation(a *app, w io.Writer, flags SoilFlags, logger *slog.Logger) error {
	c := soil.New(a.soil,
		soil.WithLogger(logger),
		soil.WithObserver(observe[soil.State](logger)),
	)

	values := flags.values()
	for _, field := range types.SoilFields {
		if err := c.SetField(string(field), values[field]); err != nil {
			return err
		}
	}

	if err := c.Submit(a.ctx); err != nil && types.IsValidation(err) {
		alert(w, err)
		return errReported
	}

	switch s := c.State().(type) {
	case soil.Recommended:
		fmt.Fprintf(w, "Recommended Crop: %s\n", s.Prediction.Display())
	case soil.Rejected:
		fmt.Fprintf(w, "! %s\n", s.Message)
		return errReported
	}
	return nil
}

// runWeather opens the weather controller, waits for the default location,
// searches for location when given and renders the final snapshot to w.
func runWeather(a *app, w io.Writer, location string, logger *slog.Logger) error {
	c := weather.Open(a.ctx, a.weather,
		weather.WithLogger(logger),
		weather.WithObserver(observe[weather.State](logger)),
		weather.WithDefaultLocation(a.cfg.Weather.DefaultLocation),
	)
	c.Wait()

	if location != "" {
		c.SetLocation(location)
		_ = c.Search(a.ctx)
	}

	switch s := c.State().(type) {
	case weather.Ready:
		renderSnapshot(w, s.Snapshot)
	case weather.Failed:
		fmt.Fprintf(w, "! %s\n", s.Message)
		return errReported
	}
	return nil
}

func renderSnapshot(w io.Writer, snap types.WeatherSnapshot) {
	cur := snap.Current
	name := cur.Name
	if name == "" {
		name = snap.Location
	}

	fmt.Fprintf(w, "%s: %.1f°C, %s\n", name, cur.Temp, cur.Description)
	fmt.Fprintf(w, "Humidity: %.0f%%  Wind: %.1f m/s\n", cur.Humidity, cur.WindSpeed)
	if cur.Icon != "" {
		fmt.Fprintf(w, "Icon: %s\n", weather.IconURL(cur.Icon))
	}
	fmt.Fprintf(w, "Advice: %s\n", weather.Advice(cur.Humidity))

	fmt.Fprintln(w, "\nNext hours:")
	for _, h := range weather.NextHours(snap) {
		fmt.Fprintf(w, "  %s  %5.1f°C  %s\n", h.Time.Format("Jan 2 15:04"), h.Temp, h.Description)
	}

	fmt.Fprintln(w, "\nDaily:")
	for _, d := range snap.Daily {
		fmt.Fprintf(w, "  %s  %5.1f°C  %s\n", d.Time.Format("Mon Jan 2"), d.Temp, d.Description)
	}
}

func alert(w io.Writer, err error) {
	fmt.Fprintf(w, "! %s\n", types.UserMessage(err, err.Error()))
}
