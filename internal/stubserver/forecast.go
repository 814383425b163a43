package stubserver

import (
	"encoding/binary"
	"math"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"agromind/internal/types"
)

const (
	forecastStep  = 3 * time.Hour
	forecastSteps = 56 // seven days of three-hour steps
	hourlyRecords = 12
	dailyRecords  = 7
)

type skyCondition struct {
	main, description, icon string
}

var skies = []skyCondition{
	{"Clear", "clear sky", "01"},
	{"Clouds", "few clouds", "02"},
	{"Clouds", "scattered clouds", "03"},
	{"Clouds", "overcast clouds", "04"},
	{"Rain", "light rain", "10"},
	{"Rain", "moderate rain", "10"},
	{"Thunderstorm", "thunderstorm", "11"},
	{"Haze", "haze", "50"},
}

// BuildWeather generates a weather_full payload for location. Output depends
// only on the location name and now. Hourly holds the first twelve forecast
// steps; daily holds the first step of each calendar date, at most seven.
func BuildWeather(location string, now time.Time) types.WeatherPayload {
	seed := locationSeed(location)
	now = now.UTC()

	current := syntheticCondition(seed, 0, now)
	current.Name = location

	start := now.Truncate(forecastStep).Add(forecastStep)
	forecast := make([]types.ProviderCondition, 0, forecastSteps)
	for i := range forecastSteps {
		at := start.Add(time.Duration(i) * forecastStep)
		c := syntheticCondition(seed, i+1, at)
		c.DtTxt = at.Format(types.ProviderTimeLayout)
		forecast = append(forecast, c)
	}

	hourly := forecast[:hourlyRecords]

	daily := make([]types.ProviderCondition, 0, dailyRecords)
	seen := make(map[string]struct{}, dailyRecords)
	for _, c := range forecast {
		date := strings.SplitN(c.DtTxt, " ", 2)[0]
		if _, ok := seen[date]; !ok {
			seen[date] = struct{}{}
			daily = append(daily, c)
		}
		if len(daily) >= dailyRecords {
			break
		}
	}

	return types.WeatherPayload{
		Location: location,
		Current:  &current,
		Hourly:   hourly,
		Daily:    daily,
	}
}

func locationSeed(location string) uint32 {
	digest := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(location))))
	return binary.BigEndian.Uint32(digest[:4])
}

func syntheticCondition(seed uint32, step int, at time.Time) types.ProviderCondition {
	baseTemp := 18 + float64(seed%14)
	baseHumidity := 45 + float64((seed>>8)%50)

	// Warmest mid-afternoon, coolest before dawn.
	diurnal := math.Sin(2 * math.Pi * float64(at.Hour()-9) / 24)
	temp := round1(baseTemp + 5*diurnal)
	humidity := math.Max(10, math.Min(100, math.Round(baseHumidity-8*diurnal)))
	wind := round1(1 + float64((seed>>16+uint32(step))%60)/10)

	sky := skies[(seed+uint32(step))%uint32(len(skies))]
	suffix := "d"
	if at.Hour() < 6 || at.Hour() >= 18 {
		suffix = "n"
	}

	return types.ProviderCondition{
		Dt: at.Unix(),
		Weather: []types.ProviderWeather{{
			Main:        sky.main,
			Description: sky.description,
			Icon:        sky.icon + suffix,
		}},
		Main: types.ProviderMain{Temp: temp, Humidity: humidity},
		Wind: types.ProviderWind{Speed: wind},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
