package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromind/internal/config"
	"agromind/internal/stubserver"
	"agromind/internal/types"
)

// startStub runs the stub service and points both service URLs at it.
func startStub(t *testing.T) {
	t.Helper()
	srv, err := stubserver.NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	srv.MountRoutes()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	t.Setenv("INFERENCE_API_URL", ts.URL)
	t.Setenv("WEATHER_API_URL", ts.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEFAULT_LOCATION", "Dhaka")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

var riceFlags = []string{
	"--n=90", "--p=40", "--k=40",
	"--temperature=25", "--humidity=80", "--ph=6.5", "--rainfall=200",
}

func TestRecommend_Rice(t *testing.T) {
	startStub(t)

	out, err := runCLI(t, append([]string{"recommend"}, riceFlags...)...)

	require.NoError(t, err)
	assert.Equal(t, "Recommended Crop: rice\n", out)
}

func TestRecommend_MissingField(t *testing.T) {
	startStub(t)

	out, err := runCLI(t, "recommend", "--n=90", "--p=40", "--k=40",
		"--temperature=25", "--humidity=80", "--rainfall=200")

	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "! Please fill PH\n", out)
}

func TestRecommend_UnparsableValueReportedByService(t *testing.T) {
	startStub(t)

	args := append([]string{"recommend"}, riceFlags...)
	args = append(args, "--ph=acidic")
	out, err := runCLI(t, args...)

	require.NoError(t, err)
	assert.Equal(t, "Recommended Crop: Missing feature: ph\n", out)
}

func TestDetect_NoImage(t *testing.T) {
	startStub(t)

	out, err := runCLI(t, "detect")

	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "! Please select an image!\n", out)
}

func TestDetect_Image(t *testing.T) {
	startStub(t)
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	path := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := runCLI(t, "detect", "--image", path)

	require.NoError(t, err)
	want := stubserver.ClassifyLeaf(data)
	assert.Contains(t, out, "Disease: "+want.Disease+"\n")
	assert.Contains(t, out, "Recommendation: "+want.Recommendation+"\n")
}

func TestWeather_Search(t *testing.T) {
	startStub(t)

	out, err := runCLI(t, "weather", "--location", "Sylhet")

	require.NoError(t, err)
	assert.Contains(t, out, "Sylhet: ")
	assert.Contains(t, out, "Advice: ")
	assert.Contains(t, out, "Icon: https://openweathermap.org/img/wn/")
	assert.Contains(t, out, "Next hours:")
	assert.Contains(t, out, "Daily:")
}

func TestWeather_ServiceDown(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()
	t.Setenv("WEATHER_API_URL", url)
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "weather")

	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "! Weather not available. Try again!\n", out)
}

func TestDashboard(t *testing.T) {
	startStub(t)

	args := append([]string{"dashboard", "--location", "Khulna"}, riceFlags...)
	out, err := runCLI(t, args...)

	assert.ErrorIs(t, err, errReported, "no image selected")
	assert.Contains(t, out, "== Disease detection ==\n! Please select an image!\n")
	assert.Contains(t, out, "== Crop recommendation ==\nRecommended Crop: rice\n")
	assert.Contains(t, out, "== Weather ==\nKhulna: ")
}

func TestApp_DetectionFailuresDoNotBlockRecommendation(t *testing.T) {
	var cropCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(types.PathDetectDisease, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc(types.PathRecommendCrop, func(w http.ResponseWriter, r *http.Request) {
		cropCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"recommended_crop":"rice"}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	t.Setenv("INFERENCE_API_URL", ts.URL)
	t.Setenv("BREAKER_MAX_FAILURES", "1")
	t.Setenv("LOG_LEVEL", "error")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := newApp(context.Background(), cfg, logger, io.Discard)

	path := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0o600))

	var det bytes.Buffer
	err = runDetection(a, &det, path, logger)
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "! Error detecting disease!\n", det.String())

	var rec bytes.Buffer
	flags := SoilFlags{N: "90", P: "40", K: "40", Temperature: "25", Humidity: "80", PH: "6.5", Rainfall: "200"}
	err = runRecommendation(a, &rec, flags, logger)
	require.NoError(t, err)
	assert.Equal(t, "Recommended Crop: rice\n", rec.String())
	assert.Equal(t, int32(1), cropCalls.Load())
}

func TestVersion(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "agromind dev (commit none, built unknown)\n", out)
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "harvest")
	assert.Error(t, err)
}
