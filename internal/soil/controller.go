// Package soil implements the soil sample controller that requests crop
// recommendations from the inference service.
package soil

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"agromind/internal/external"
	"agromind/internal/metrics"
	"agromind/internal/types"
)

// MsgRecommendFailed is shown when no usable answer came back.
const MsgRecommendFailed = "Error getting recommendation!"

const controllerName = "soil"

// Controller owns the seven raw soil readings and the crop prediction. It is
// safe for concurrent use; the last call to complete determines the state.
type Controller struct {
	client    external.ServiceClient
	logger    *slog.Logger
	observers []func(State)
	notifyMu  sync.Mutex

	mu     sync.Mutex
	sample types.SoilSample
	state  State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to be called after every state transition.
// Observers run outside the controller lock, one notification at a time, and
// receive the state current at delivery. Overlapping calls may coalesce, but
// the last notification always carries the state State returns. Observers
// must not call methods that change the controller's state.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// New creates a Controller with every field unset.
func New(client external.ServiceClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: slog.Default(),
		sample: make(types.SoilSample, len(types.SoilFields)),
		state:  Editing{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a recommendation call is in flight.
func (c *Controller) Busy() bool {
	return c.State().Phase() == types.PhaseSubmitting
}

// Sample returns a copy of the raw readings.
func (c *Controller) Sample() types.SoilSample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sample.Clone()
}

// Prediction returns the prediction held by a Recommended state.
func (c *Controller) Prediction() (types.CropPrediction, bool) {
	if r, ok := c.State().(Recommended); ok {
		return r.Prediction, true
	}
	return types.CropPrediction{}, false
}

// SetField stores the raw text for the named reading and discards any
// prediction. The text is not checked here. While a call is in flight the
// state stays Submitting and the value applies to the next submission.
func (c *Controller) SetField(name, raw string) error {
	field, ok := types.ParseSoilField(name)
	if !ok {
		return types.NewValidationError(types.ErrCodeValidationUnknownField,
			fmt.Sprintf("Unknown field %q", name))
	}

	c.mu.Lock()
	c.sample[field] = raw
	if _, inFlight := c.state.(Submitting); inFlight {
		c.mu.Unlock()
		return nil
	}
	_, editing := c.state.(Editing)
	changed := !editing
	if changed {
		c.setLocked(Editing{})
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
	return nil
}

// Submit requests a crop recommendation for the current readings. The first
// empty field, in submission order, is reported as a validation error and no
// call is made.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if field, missing := c.sample.FirstMissing(); missing {
		c.mu.Unlock()
		return types.NewValidationError(types.ErrCodeValidationMissingField, MissingFieldMessage(field))
	}
	req := BuildRequest(c.sample)
	c.setLocked(Submitting{})
	c.mu.Unlock()
	c.notify()

	var next State
	prediction, err := c.recommend(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "crop recommendation failed", "error", err)
		next = Rejected{Message: MsgRecommendFailed}
	} else {
		if prediction.ServiceReported() {
			c.logger.InfoContext(ctx, "recommendation service reported an error", "message", prediction.Error)
		}
		next = Recommended{Prediction: prediction}
	}

	c.mu.Lock()
	c.setLocked(next)
	c.mu.Unlock()
	c.notify()

	return err
}

// recommend accepts any decodable body that names a crop or an error with a
// status below 500; the service reports bad input with a 400 and an error
// field. 5xx and 429 bodies never reach here: the client maps them to
// upstream errors.
func (c *Controller) recommend(ctx context.Context, req types.CropRecommendationRequest) (types.CropPrediction, error) {
	resp, err := c.client.PostJSON(ctx, types.PathRecommendCrop, req)
	if err != nil {
		return types.CropPrediction{}, err
	}

	var body types.CropRecommendationResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return types.CropPrediction{}, err
	}
	if body.RecommendedCrop == "" && body.Error == "" {
		if !resp.OK() {
			return types.CropPrediction{}, resp.StatusError()
		}
		return types.CropPrediction{}, types.NewAppError(types.ErrCodeUpstreamDecodeFailed,
			"response has neither recommended_crop nor error", nil)
	}
	return types.CropPrediction{Crop: body.RecommendedCrop, Error: body.Error}, nil
}

// setLocked records a transition. c.mu must be held.
func (c *Controller) setLocked(s State) {
	c.state = s
	metrics.ControllerTransitions.WithLabelValues(controllerName, string(s.Phase())).Inc()
	c.logger.Debug("soil state changed", "phase", s.Phase())
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	s := c.State()
	for _, fn := range c.observers {
		fn(s)
	}
}
