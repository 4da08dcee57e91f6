package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Validation
	ErrManagerNameRequired = errors.New("manager name is required")
	ErrClubNameRequired    = errors.New("club name is required")
	ErrRequestIDRequired   = errors.New("request id is required")
	ErrInvalidReviewAction = errors.New("action must be approve or reject")
	ErrManagerIDRequired   = errors.New("manager id is required")

	// Not found
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrManagerNotFound    = errors.New("manager not found")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")

	// The approve transition is two-phase: when the publish step fails the
	// submission is already marked approved. The rebuild job is the recovery
	// path for that half-committed state.
	ErrPublishFailed = errors.New("failed to publish manager record")
)
