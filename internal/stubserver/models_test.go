package stubserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLeaf(t *testing.T) {
	a := ClassifyLeaf([]byte("leaf-a"))
	assert.Equal(t, a, ClassifyLeaf([]byte("leaf-a")))
	assert.Contains(t, DiseaseClasses, a.Disease)

	for i := range 200 {
		p := ClassifyLeaf([]byte{byte(i), byte(i >> 1)})
		if strings.HasSuffix(p.Disease, "healthy") {
			assert.Equal(t, TreatmentHealthy, p.Recommendation)
		} else {
			assert.Equal(t, TreatmentDiseased, p.Recommendation)
		}
	}
}

func TestTreatmentFor(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{class: "Tomato___healthy", want: TreatmentHealthy},
		{class: "Cherry_(including_sour)___healthy", want: TreatmentHealthy},
		{class: "Tomato___Late_blight", want: TreatmentDiseased},
		{class: "Apple___Apple_scab", want: TreatmentDiseased},
		{class: "healthy", want: TreatmentDiseased},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, treatmentFor(tt.class))
		})
	}
}

func TestRecommendCrop(t *testing.T) {
	assert.Equal(t, "rice", RecommendCrop([7]float64{90, 40, 40, 25, 80, 6.5, 200}))
	assert.Equal(t, "cotton", RecommendCrop([7]float64{120, 45, 20, 24, 80, 7, 80}))
	assert.Equal(t, "kidneybeans", RecommendCrop([7]float64{20, 67, 20, 20, 21.6, 5.7, 105}))
}
