package soil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromind/internal/types"
)

func TestBuildRequest_WireShape(t *testing.T) {
	sample := types.SoilSample{
		types.SoilNitrogen:    "90",
		types.SoilPhosphorus:  "40",
		types.SoilPotassium:   "40",
		types.SoilTemperature: "25",
		types.SoilHumidity:    "80",
		types.SoilPH:          "six",
		types.SoilRainfall:    "1e2",
	}

	body, err := json.Marshal(BuildRequest(sample))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"N":90,"P":40,"K":40,"temperature":25,"humidity":80,"ph":null,"rainfall":100}`,
		string(body))
}

func TestMissingFieldMessage(t *testing.T) {
	assert.Equal(t, "Please fill PH", MissingFieldMessage(types.SoilPH))
	assert.Equal(t, "Please fill RAINFALL", MissingFieldMessage(types.SoilRainfall))
}
