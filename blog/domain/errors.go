package domain

import "errors"

var (
	// ErrInvalidQuery is the kind of every malformed list query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrValidation is the kind of every rejected create request.
	ErrValidation = errors.New("validation failed")

	ErrPostNotFound = errors.New("Post not found")
)

var (
	ErrWrongSortValue     = &Error{Kind: ErrInvalidQuery, Message: "Wrong sort value"}
	ErrWrongSortDirection = &Error{Kind: ErrInvalidQuery, Message: "Wrong sort direction value"}
	ErrTitleMissing       = &Error{Kind: ErrValidation, Message: "Title of post is missing"}
	ErrContentMissing     = &Error{Kind: ErrValidation, Message: "Content of post is missing"}
)

// Error is a caller-correctable failure. Message is safe to return to clients
// as is, and Kind allows matching with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
