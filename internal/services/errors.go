package services

import "errors"

var (
	// ErrServiceNotInitialized is returned when a service is used before Initialize.
	ErrServiceNotInitialized = errors.New("service not initialized")

	// ErrLayoutNotFound is returned when a layout id is not in the catalog.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrMissingCredential is returned when verification is asked for an empty credential.
	ErrMissingCredential = errors.New("credential not configured")

	// ErrVerificationFailed is returned when the provider rejected the credential.
	ErrVerificationFailed = errors.New("credential verification failed")
)
