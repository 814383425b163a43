package weather

import "agromind/internal/types"

// State is the weather controller's current state. It is one of Loading,
// Ready or Failed.
type State interface {
	Phase() types.Phase
	isState()
}

// Loading means a fetch is in flight.
type Loading struct {
	Location string
}

// Ready holds the snapshot from the last successful fetch.
type Ready struct {
	Snapshot types.WeatherSnapshot
}

// Failed holds the user-facing message for the last failed fetch. No
// snapshot is kept.
type Failed struct {
	Message string
}

func (Loading) Phase() types.Phase { return types.PhaseSubmitting }
func (Ready) Phase() types.Phase   { return types.PhaseSucceeded }
func (Failed) Phase() types.Phase  { return types.PhaseFailed }

func (Loading) isState() {}
func (Ready) isState()   {}
func (Failed) isState()  {}
