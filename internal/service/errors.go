package service

import "errors"

// Domain errors for auth and task flows. Handlers map these to HTTP
// statuses; token failures all surface as a generic 401 so the response
// never reveals which check failed.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNameTaken          = errors.New("username already taken")

	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenUnknown   = errors.New("unrecognized token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrUnknownUser    = errors.New("unknown user")

	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports a rejected input field; surfaced as 400 with
// field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
