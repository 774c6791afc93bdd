package session

// OutcomeState enumerates the transient submission outcome states.
type OutcomeState string

const (
	// OutcomePending is the resting state: no submit attempt has settled
	// since the last reset.
	OutcomePending OutcomeState = "pending"
	// OutcomeSuccess means the submit callback settled without error.
	OutcomeSuccess OutcomeState = "success"
	// OutcomeFailure means the submit callback returned an error. The error
	// detail is not carried here; only the generic message is.
	OutcomeFailure OutcomeState = "failure"
)

// Outcome is the submission outcome surfaced to the user after a submit
// attempt. It is reset to pending at the start of every attempt and never
// holds success and failure simultaneously.
type Outcome struct {
	State   OutcomeState
	Message string
}

// Default user-facing status messages. The failure message never carries the
// callback's error detail; that goes to the diagnostic hook.
const (
	DefaultSuccessMessage = "Your form has been submitted."
	DefaultFailureMessage = "Something went wrong. Please try again."
)
