package detection

import "agromind/internal/types"

// State is the detection controller's current state. It is one of Idle,
// ImageSelected, Submitting, Detected or Failed.
type State interface {
	Phase() types.Phase
	isState()
}

// Idle means no image has been selected yet.
type Idle struct{}

// ImageSelected means an image is ready to submit and no prediction is held.
type ImageSelected struct{}

// Submitting means a detection call is in flight.
type Submitting struct{}

// Detected holds the prediction from the last successful call.
type Detected struct {
	Prediction types.DiseasePrediction
}

// Failed holds the user-facing message for the last failed call.
type Failed struct {
	Message string
}

func (Idle) Phase() types.Phase          { return types.PhaseIdle }
func (ImageSelected) Phase() types.Phase { return types.PhaseIdle }
func (Submitting) Phase() types.Phase    { return types.PhaseSubmitting }
func (Detected) Phase() types.Phase      { return types.PhaseSucceeded }
func (Failed) Phase() types.Phase        { return types.PhaseFailed }

func (Idle) isState()          {}
func (ImageSelected) isState() {}
func (Submitting) isState()    {}
func (Detected) isState()      {}
func (Failed) isState()        {}
