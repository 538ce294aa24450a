package domain

import "errors"

// Review error taxonomy. Handlers map these with errors.Is; the service
// wraps underlying failures so callers can tell a business refusal from
// an I/O fault.
var (
	// ErrValidation: bad input shape, the caller's fault, not retried.
	ErrValidation = errors.New("invalid review input")

	// ErrIneligible: business-rule refusal (order missing, not delivered,
	// or product not part of the order).
	ErrIneligible = errors.New("not eligible to review this product")

	// ErrDuplicateReview: a review for this (user, order, product) triple
	// already exists.
	ErrDuplicateReview = errors.New("review already exists for this order and product")

	// ErrNotFound: the requested entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrStorage: underlying store failure, retryable by the caller.
	ErrStorage = errors.New("storage error")

	// ErrOrderLookup: the order collaborator failed during an eligibility
	// check. Treated as ineligible for safety but logged distinctly.
	ErrOrderLookup = errors.New("order lookup failed")
)
