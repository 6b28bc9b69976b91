package domain

import "errors"

// Sentinel errors for the failure classes the transport layer maps onto
// responses. Services wrap these with fmt.Errorf("...: %w", ...) so callers
// can test with errors.Is while keeping a stable message.
var (
	ErrValidation              = errors.New("validation failed")
	ErrNotFound                = errors.New("not found")
	ErrAuthFailure             = errors.New("authentication failed")
	ErrProofExpired            = errors.New("proof expired")
	ErrRateLimited             = errors.New("rate limited")
	ErrCollaboratorUnavailable = errors.New("privacy collaborator unavailable")
)

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsAuthFailure(err error) bool { return errors.Is(err, ErrAuthFailure) }

func IsProofExpired(err error) bool { return errors.Is(err, ErrProofExpired) }

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

func IsCollaboratorUnavailable(err error) bool {
	return errors.Is(err, ErrCollaboratorUnavailable)
}
