// Package detection implements the leaf-photo disease detection controller.
package detection

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"agromind/internal/external"
	"agromind/internal/metrics"
	"agromind/internal/types"
)

// User-facing messages.
const (
	MsgNoImage      = "Please select an image!"
	MsgDetectFailed = "Error detecting disease!"
)

const controllerName = "detection"

// Controller owns the selected image and the disease prediction, and drives
// the POST /api/detect_disease call. It is safe for concurrent use; when calls
// overlap, the last one to complete determines the state.
type Controller struct {
	client    external.ServiceClient
	logger    *slog.Logger
	observers []func(State)
	notifyMu  sync.Mutex

	mu    sync.Mutex
	image *types.UploadedImage
	state State
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

// New creates a Controller in the Idle state.
func New(client external.ServiceClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: slog.Default(),
		state:  Idle{},
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

// Busy reports whether a detection call is in flight. Callers use it to
// disable the submit trigger.
func (c *Controller) Busy() bool {
	return c.State().Phase() == types.PhaseSubmitting
}

// Image returns the selected image, if any.
func (c *Controller) Image() (types.UploadedImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.image == nil {
		return types.UploadedImage{}, false
	}
	return *c.image, true
}

// Prediction returns the prediction held by a Detected state.
func (c *Controller) Prediction() (types.DiseasePrediction, bool) {
	if d, ok := c.State().(Detected); ok {
		return d.Prediction, true
	}
	return types.DiseasePrediction{}, false
}

// SelectImage replaces the current image and discards any prediction.
func (c *Controller) SelectImage(image types.UploadedImage) {
	image.Data = bytes.Clone(image.Data)

	c.mu.Lock()
	c.image = &image
	c.setLocked(ImageSelected{})
	c.mu.Unlock()

	c.notify()
}

// Submit sends the selected image for classification. Without an image it
// returns a validation error and makes no call. A failed call leaves the
// controller in Failed with a generic message; the cause is logged and
// returned.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.image == nil {
		c.mu.Unlock()
		return types.NewValidationError(types.ErrCodeValidationMissingImage, MsgNoImage)
	}
	image := *c.image
	c.setLocked(Submitting{})
	c.mu.Unlock()
	c.notify()

	var next State
	prediction, err := c.detect(ctx, image)
	if err != nil {
		c.logger.WarnContext(ctx, "disease detection failed",
			"image", image.Filename,
			"error", err,
		)
		next = Failed{Message: MsgDetectFailed}
	} else {
		next = Detected{Prediction: prediction}
	}

	c.mu.Lock()
	c.setLocked(next)
	c.mu.Unlock()
	c.notify()

	return err
}

func (c *Controller) detect(ctx context.Context, image types.UploadedImage) (types.DiseasePrediction, error) {
	var prediction types.DiseasePrediction

	resp, err := c.client.PostMultipart(ctx, types.PathDetectDisease, types.ImageFormField, image)
	if err != nil {
		return prediction, err
	}
	if !resp.OK() {
		return prediction, resp.StatusError()
	}
	if err := resp.DecodeJSON(&prediction); err != nil {
		return prediction, err
	}
	if prediction.Disease == "" {
		return prediction, types.NewAppError(types.ErrCodeUpstreamDecodeFailed, "response has no disease field", nil)
	}
	return prediction, nil
}

// setLocked records a transition. c.mu must be held.
func (c *Controller) setLocked(s State) {
	c.state = s
	metrics.ControllerTransitions.WithLabelValues(controllerName, string(s.Phase())).Inc()
	c.logger.Debug("detection state changed", "phase", s.Phase())
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
