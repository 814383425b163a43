package soil

import "agromind/internal/types"

// State is the soil controller's current state. It is one of Editing,
// Submitting, Recommended or Rejected.
type State interface {
	Phase() types.Phase
	isState()
}

// Editing means fields may be changed and no prediction is held.
type Editing struct{}

// Submitting means a recommendation call is in flight.
type Submitting struct{}

// Recommended holds the service's answer. The answer may be a service-side
// error message; see types.CropPrediction.
type Recommended struct {
	Prediction types.CropPrediction
}

// Rejected holds the user-facing message for a failed call.
type Rejected struct {
	Message string
}

func (Editing) Phase() types.Phase     { return types.PhaseIdle }
func (Submitting) Phase() types.Phase  { return types.PhaseSubmitting }
func (Recommended) Phase() types.Phase { return types.PhaseSucceeded }
func (Rejected) Phase() types.Phase    { return types.PhaseFailed }

func (Editing) isState()     {}
func (Submitting) isState()  {}
func (Recommended) isState() {}
func (Rejected) isState()    {}
