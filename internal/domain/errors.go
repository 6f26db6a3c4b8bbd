package domain

import "errors"

// Sentinel errors for the service-wide error taxonomy. Callers compare with
// errors.Is; wrapping adds the complaint id, attempted transition and actor
// role so failures can be audited after the fact.
var (
	// ErrModelUnavailable indicates the classifier artifact is missing or
	// corrupt. Fatal at service start; every predict fails until a valid
	// artifact is deployed.
	ErrModelUnavailable = errors.New("classifier model unavailable")

	// ErrTrainingData indicates a malformed or empty training set. Surfaced
	// to the operator running training, never to end users.
	ErrTrainingData = errors.New("invalid training data")

	// ErrInvalidTransition indicates the complaint is not in a state that
	// allows the attempted transition. No state change occurs.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized indicates the actor's role does not permit the
	// attempted action. No state change occurs.
	ErrUnauthorized = errors.New("actor role not permitted")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
