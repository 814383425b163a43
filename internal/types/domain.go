package types

import "time"

// UploadedImage is a leaf photo selected for disease detection.
type UploadedImage struct {
	Filename  string
	MediaType string
	Data      []byte
}

// DiseasePrediction is the classification returned by the detection service.
type DiseasePrediction struct {
	Disease        string `json:"disease"`
	Recommendation string `json:"recommendation"`
}

// SoilSample holds the raw text entered for each soil/climate reading.
// A field is unset when it has no entry or its entry is the empty string.
type SoilSample map[SoilField]string

// Clone returns an independent copy of the sample.
func (s SoilSample) Clone() SoilSample {
	out := make(SoilSample, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FirstMissing returns the first field, in submission order, with no value.
func (s SoilSample) FirstMissing() (SoilField, bool) {
	for _, f := range SoilFields {
		if s[f] == "" {
			return f, true
		}
	}
	return "", false
}

// CropRecommendationRequest is the JSON body of a crop recommendation call.
// A nil reading is encoded as null; this happens when the raw text does not
// parse as a number.
type CropRecommendationRequest struct {
	N           *float64 `json:"N"`
	P           *float64 `json:"P"`
	K           *float64 `json:"K"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PH          *float64 `json:"ph"`
	Rainfall    *float64 `json:"rainfall"`
}

// CropRecommendationResponse is the body returned by the recommendation service.
// The service sets exactly one of the two fields.
type CropRecommendationResponse struct {
	RecommendedCrop string `json:"recommended_crop,omitempty"`
	Error           string `json:"error,omitempty"`
}

// CropPrediction is either a recommended crop or an error message reported by
// the service. Both are displayed the same way.
type CropPrediction struct {
	Crop  string
	Error string
}

// Display returns the crop name, or the service error when no crop was given.
func (p CropPrediction) Display() string {
	if p.Crop != "" {
		return p.Crop
	}
	return p.Error
}

// ServiceReported reports whether the prediction is a service-side error message.
func (p CropPrediction) ServiceReported() bool {
	return p.Crop == "" && p.Error != ""
}

// ConditionRecord is one weather observation or forecast step.
type ConditionRecord struct {
	Time        time.Time
	Name        string // Place name; only set on current conditions.
	Description string
	Icon        string
	Temp        float64 // Celsius
	Humidity    float64 // Percent
	WindSpeed   float64 // m/s
}

// WeatherSnapshot is the full weather view for one location.
// Hourly and Daily keep the order the service returned.
type WeatherSnapshot struct {
	Location string
	Current  ConditionRecord
	Hourly   []ConditionRecord
	Daily    []ConditionRecord
}
