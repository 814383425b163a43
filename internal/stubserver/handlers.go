package stubserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"agromind/internal/types"
)

// maxUploadSize bounds a multipart leaf image upload (16 MB).
const maxUploadSize = 16 << 20

// maxRequestBodySize bounds a JSON request body (1 MB).
const maxRequestBodySize = 1 << 20

type homeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleHome reports that the service is up.
func (s *Server) HandleHome(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, homeResponse{Status: "ok", Message: "Smart Agro API is live!"})
}

// HandleHealth is the liveness probe.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleDetectDisease classifies the uploaded leaf image.
func (s *Server) HandleDetectDisease(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile(types.ImageFormField)
	if err != nil {
		Error(w, r, types.NewValidationError(types.ErrCodeValidationMissingImage, "No image uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		Error(w, r, types.NewValidationError(types.ErrCodeValidationMissingImage, "No image uploaded"))
		return
	}

	prediction := ClassifyLeaf(data)
	s.Logger.DebugContext(r.Context(), "leaf classified", "bytes", len(data), "disease", prediction.Disease)
	JSON(w, r, http.StatusOK, prediction)
}

// HandleRecommendCrop answers with the nearest crop for the seven readings.
// Readings may be JSON numbers or numeric strings.
func (s *Server) HandleRecommendCrop(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		Error(w, r, types.NewValidationError(types.ErrCodeValidationInvalidJSON, "No input provided"))
		return
	}

	var readings [7]float64
	for i, field := range types.SoilFields {
		v, err := readingValue(field, body[string(field)])
		if err != nil {
			Error(w, r, err)
			return
		}
		readings[i] = v
	}

	JSON(w, r, http.StatusOK, types.CropRecommendationResponse{RecommendedCrop: RecommendCrop(readings)})
}

func readingValue(field types.SoilField, raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, types.NewValidationError(types.ErrCodeValidationMissingField,
			fmt.Sprintf("Missing feature: %s", field))
	case float64:
		return v, nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
	}
	return 0, types.NewValidationError(types.ErrCodeValidationInvalidJSON,
		fmt.Sprintf("Invalid value for feature: %s", field))
}

// HandleWeatherFull returns current conditions and forecasts for the
// requested location, or the default location when none is given.
func (s *Server) HandleWeatherFull(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get(types.LocationParam))
	if location == "" {
		location = s.DefaultLocation
	}

	JSON(w, r, http.StatusOK, BuildWeather(location, s.Now()))
}
