package models

import "errors"

// Domain error taxonomy. Services wrap these with fmt.Errorf("%w: ...") and
// handlers translate them to HTTP statuses with errors.Is.
var (
	// ErrNotFound signals resource absence. It takes precedence over
	// ErrAccessDenied when the resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a unique-constraint violation (duplicate
	// username, email, category name or slug).
	ErrConflict = errors.New("already exists")

	// ErrAccessDenied signals an ownership/role authorization failure.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCredentials covers unknown identifier and wrong password
	// without distinguishing the two to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled signals login against a deactivated account.
	ErrAccountDisabled = errors.New("account is deactivated")

	// ErrInvalidReference signals a payload pointing at a resource that
	// does not exist (e.g. an unknown category on post creation). A
	// client defect, not a lookup miss: rendered as 400, not 404.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrTokenExpired signals a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers every other token verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// ValidationError is a single field-level rule violation. Violations are
// aggregated per request into an ordered list.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
