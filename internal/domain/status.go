package domain

// RegistrationStatus is the customer lifecycle status. Every mutation endpoint
// consults CanMutate instead of checking statuses ad hoc.
type RegistrationStatus string

const (
	StatusEditable            RegistrationStatus = "EDITABLE"
	StatusPendingVerification RegistrationStatus = "PENDING_VERIFICATION"
	StatusActive              RegistrationStatus = "ACTIVE"
	StatusInactive            RegistrationStatus = "INACTIVE"
	StatusRejected            RegistrationStatus = "REJECTED"
)

var statusTransitions = map[RegistrationStatus][]RegistrationStatus{
	StatusEditable:            {StatusPendingVerification},
	StatusPendingVerification: {StatusActive, StatusInactive, StatusRejected},
	StatusActive:              {StatusInactive},
	StatusInactive:            {StatusActive},
	StatusRejected:            {StatusEditable},
}

// CanTransitionTo reports whether the transition table allows moving to target.
func (s RegistrationStatus) CanTransitionTo(target RegistrationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanMutate reports whether profile writes are still permitted. Only the
// pre-verification editable status accepts writes; everything after the
// verification request is read-only for the customer.
func (s RegistrationStatus) CanMutate() bool {
	return s == StatusEditable
}

// IsTerminal reports whether no further customer-initiated transition exists.
func (s RegistrationStatus) IsTerminal() bool {
	return s == StatusActive || s == StatusInactive
}
