package model

// Phase is the interaction state for one question submission.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFetching   Phase = "fetching"
	PhaseComposing  Phase = "composing"
	PhaseCompleting Phase = "completing"
	PhaseRendered   Phase = "rendered"
	PhaseError      Phase = "error"
)
