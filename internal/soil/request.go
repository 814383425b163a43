package soil

import (
	"strconv"
	"strings"

	"agromind/internal/types"
)

// BuildRequest converts a complete sample into the request body. Text that
// does not parse as a number becomes a nil reading.
func BuildRequest(sample types.SoilSample) types.CropRecommendationRequest {
	return types.CropRecommendationRequest{
		N:           parseReading(sample[types.SoilNitrogen]),
		P:           parseReading(sample[types.SoilPhosphorus]),
		K:           parseReading(sample[types.SoilPotassium]),
		Temperature: parseReading(sample[types.SoilTemperature]),
		Humidity:    parseReading(sample[types.SoilHumidity]),
		PH:          parseReading(sample[types.SoilPH]),
		Rainfall:    parseReading(sample[types.SoilRainfall]),
	}
}

func parseReading(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

// MissingFieldMessage is the prompt shown when field has no value.
func MissingFieldMessage(field types.SoilField) string {
	return "Please fill " + strings.ToUpper(string(field))
}
