package domain

// DraftState is the only state a draft exposes. Submitting never moves a draft out of it.
type DraftState string

const (
	// DraftStateIncomplete - at least one required field is missing, submit is disabled
	DraftStateIncomplete DraftState = "INCOMPLETE"
	// DraftStateComplete - every required field is set, submit is enabled
	DraftStateComplete DraftState = "COMPLETE"
)

// IsValid checks if the draft state is known
func (s DraftState) IsValid() bool {
	switch s {
	case DraftStateIncomplete, DraftStateComplete:
		return true
	default:
		return false
	}
}

// CanSubmit reports whether the submit action is enabled in this state
func (s DraftState) CanSubmit() bool {
	return s == DraftStateComplete
}
