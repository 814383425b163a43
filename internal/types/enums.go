package types

// Phase is the coarse lifecycle position shared by every controller state.
// Each controller exposes its own sealed State type; Phase is what callers use
// for busy flags, metrics labels and logs.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// SoilField names one of the seven soil/climate readings sent for a crop
// recommendation. The string value is the JSON key on the wire.
type SoilField string

const (
	SoilNitrogen    SoilField = "N"
	SoilPhosphorus  SoilField = "P"
	SoilPotassium   SoilField = "K"
	SoilTemperature SoilField = "temperature"
	SoilHumidity    SoilField = "humidity"
	SoilPH          SoilField = "ph"
	SoilRainfall    SoilField = "rainfall"
)

// SoilFields lists the readings in their fixed submission and validation order.
var SoilFields = []SoilField{
	SoilNitrogen,
	SoilPhosphorus,
	SoilPotassium,
	SoilTemperature,
	SoilHumidity,
	SoilPH,
	SoilRainfall,
}

// ParseSoilField resolves a wire name to a SoilField.
func ParseSoilField(name string) (SoilField, bool) {
	for _, f := range SoilFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Service endpoint paths.
const (
	PathDetectDisease = "/api/detect_disease"
	PathRecommendCrop = "/api/recommend_crop"
	PathWeatherFull   = "/api/weather_full"

	// ImageFormField is the multipart field carrying the leaf photo.
	ImageFormField = "image"
	// LocationParam is the query parameter carrying the weather location.
	LocationParam = "location"
)
