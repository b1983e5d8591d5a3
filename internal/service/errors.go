package service

import "errors"

// Errors returned by the service layer.
var (
	// ErrEntryNotFound is returned when a meal entry id does not exist.
	ErrEntryNotFound = errors.New("meal entry not found")

	// ErrObservationNotFound is returned when a weight observation id does
	// not exist.
	ErrObservationNotFound = errors.New("weight observation not found")

	// ErrNotOnboarded is returned when profile-dependent reads run before
	// onboarding has completed.
	ErrNotOnboarded = errors.New("onboarding has not been completed")

	// ErrAlreadyOnboarded is returned when onboarding is attempted twice;
	// afterwards the profile and goal change only through explicit edits.
	ErrAlreadyOnboarded = errors.New("onboarding has already been completed")

	// ErrNilDependency is returned by constructors when a required
	// collaborator is missing.
	ErrNilDependency = errors.New("required dependency is nil")
)
