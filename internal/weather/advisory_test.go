package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agromind/internal/types"
)

func TestAdvice(t *testing.T) {
	tests := []struct {
		humidity float64
		want     string
	}{
		{76, AdviceHumid},
		{75.5, AdviceHumid},
		{75, AdviceDry},
		{0, AdviceDry},
		{100, AdviceHumid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Advice(tt.humidity), "humidity %v", tt.humidity)
	}
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", IconURL("10d"))
}

func TestNextHours(t *testing.T) {
	snap := types.WeatherSnapshot{Hourly: make([]types.ConditionRecord, 20)}
	assert.Len(t, NextHours(snap), HourlyWindow)

	snap.Hourly = snap.Hourly[:5]
	assert.Len(t, NextHours(snap), 5)
}
