package weather

import (
	"net/url"

	"agromind/internal/types"
)

// Farming advice shown next to current conditions.
const (
	AdviceHumid = "Perfect day for rice growth!"
	AdviceDry   = "Good time to spray pesticide"
)

// humidAbove is the humidity percentage above which conditions count as humid.
const humidAbove = 75

// HourlyWindow is the number of forecast steps shown as the next hours.
const HourlyWindow = 12

const iconBaseURL = "https://openweathermap.org/img/wn/"

// Advice returns the farming advice for a humidity percentage.
func Advice(humidity float64) string {
	if humidity > humidAbove {
		return AdviceHumid
	}
	return AdviceDry
}

// IconURL returns the provider's image URL for an icon identifier.
func IconURL(icon string) string {
	return iconBaseURL + url.PathEscape(icon) + "@2x.png"
}

// NextHours returns at most HourlyWindow hourly records, in service order.
func NextHours(snap types.WeatherSnapshot) []types.ConditionRecord {
	if len(snap.Hourly) > HourlyWindow {
		return snap.Hourly[:HourlyWindow]
	}
	return snap.Hourly
}
