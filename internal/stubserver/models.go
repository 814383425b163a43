package stubserver

import (
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/crypto/blake2b"

	"agromind/internal/types"
)

// DiseaseClasses are the leaf disease labels the classifier can return.
var DiseaseClasses = []string{
	"Apple___Apple_scab", "Apple___Black_rot", "Apple___Cedar_apple_rust", "Apple___healthy",
	"Blueberry___healthy", "Cherry_(including_sour)___Powdery_mildew", "Cherry_(including_sour)___healthy",
	"Corn_(maize)___Cercospora_leaf_spot Gray_leaf_spot", "Corn_(maize)___Common_rust_",
	"Corn_(maize)___Northern_Leaf_Blight", "Corn_(maize)___healthy", "Grape___Black_rot",
	"Grape___Esca_(Black_Measles)", "Grape___Leaf_blight_(Isariopsis_Leaf_Spot)", "Grape___healthy",
	"Orange___Haunglongbing_(Citrus_greening)", "Peach___Bacterial_spot", "Peach___healthy",
	"Pepper,_bell___Bacterial_spot", "Pepper,_bell___healthy", "Potato___Early_blight",
	"Potato___Late_blight", "Potato___healthy", "Raspberry___healthy", "Soybean___healthy",
	"Squash___Powdery_mildew", "Strawberry___Leaf_scorch", "Strawberry___healthy",
	"Tomato___Bacterial_spot", "Tomato___Early_blight", "Tomato___Late_blight", "Tomato___Leaf_Mold",
	"Tomato___Septoria_leaf_spot", "Tomato___Spider_mites Two-spotted_spider_mite",
	"Tomato___Target_Spot", "Tomato___Tomato_Yellow_Leaf_Curl_Virus",
	"Tomato___Tomato_mosaic_virus", "Tomato___healthy",
}

// Treatment texts.
const (
	TreatmentDiseased = "Follow recommended treatment for this disease."
	TreatmentHealthy  = "No action needed."
)

// ClassifyLeaf picks a disease class from the image bytes. The same bytes
// always give the same class.
func ClassifyLeaf(image []byte) types.DiseasePrediction {
	digest := blake2b.Sum256(image)
	disease := DiseaseClasses[binary.BigEndian.Uint32(digest[:4])%uint32(len(DiseaseClasses))]

	return types.DiseasePrediction{Disease: disease, Recommendation: treatmentFor(disease)}
}

// treatmentFor matches on the class suffix; classes are "<Plant>___<condition>".
func treatmentFor(class string) string {
	if strings.HasSuffix(class, "___healthy") {
		return TreatmentHealthy
	}
	return TreatmentDiseased
}

// cropProfile is the typical reading for one crop, in types.SoilFields order.
type cropProfile struct {
	crop     string
	readings [7]float64
}

var cropProfiles = []cropProfile{
	{"rice", [7]float64{80, 48, 40, 23.7, 82, 6.4, 236}},
	{"maize", [7]float64{78, 48, 20, 22, 65, 6.2, 85}},
	{"chickpea", [7]float64{40, 68, 80, 18.9, 16.9, 7.3, 80}},
	{"kidneybeans", [7]float64{20, 67, 20, 20, 21.6, 5.7, 105}},
	{"coffee", [7]float64{101, 29, 30, 25.5, 58.9, 6.8, 158}},
	{"cotton", [7]float64{118, 46, 20, 24, 80, 6.9, 80}},
	{"banana", [7]float64{100, 82, 50, 27, 80, 6, 105}},
}

// RecommendCrop returns the crop whose typical readings are nearest to
// readings, which must be in types.SoilFields order.
func RecommendCrop(readings [7]float64) string {
	best := ""
	bestDist := math.Inf(1)
	for _, p := range cropProfiles {
		var sum float64
		for i, v := range readings {
			d := v - p.readings[i]
			sum += d * d
		}
		if sum < bestDist {
			best, bestDist = p.crop, sum
		}
	}
	return best
}
