package service

// ValidationError reports malformed or rejected input. Surfaced as 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports an entity that is absent, soft-deleted, or owned
// by a different user. Its message is a stable part of the API contract.
// Surfaced as 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError reports a duplicate unique field such as an email or a
// per-user category name. Surfaced as 400.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// AuthError reports failed authentication. Surfaced as 401.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }
