// Package services defines the business logic for gift pages, engagement
// counters, analytics, and the template catalog. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrGiftNotFound indicates that no gift exists under the requested slug.
	ErrGiftNotFound = errors.New("gift not found")

	// ErrRecipientRequired is returned when a creation request carries an
	// empty recipient name.
	ErrRecipientRequired = errors.New("recipient_name is required")

	// ErrMessageRequired is returned when a creation request carries an
	// empty message.
	ErrMessageRequired = errors.New("message is required")

	// ErrSlugExhausted is returned when the creation path failed to find a
	// unique slug within the configured number of attempts. With the default
	// entropy budget this is practically unreachable and exists only as a
	// safety bound; retrying the whole creation is safe.
	ErrSlugExhausted = errors.New("could not allocate a unique slug")
)
