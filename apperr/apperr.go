// Package apperr defines the closed set of domain error kinds returned by the
// services and translated into HTTP responses at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Severity groups kinds by how the boundary should report them.
type Severity int

const (
	SeverityInternal Severity = iota
	SeverityUnauthenticated
	SeverityForbidden
	SeverityNotFound
	SeverityConflict
	SeverityInvalid
	SeverityUnavailable
)

// HTTPStatus maps a severity to the status code written by the boundary.
func (s Severity) HTTPStatus() int {
	switch s {
	case SeverityUnauthenticated:
		return http.StatusUnauthorized
	case SeverityForbidden:
		return http.StatusForbidden
	case SeverityNotFound:
		return http.StatusNotFound
	case SeverityConflict:
		return http.StatusConflict
	case SeverityInvalid:
		return http.StatusBadRequest
	case SeverityUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Kind is one member of the error taxonomy. Kind implements error so it can
// be used as an errors.Is target.
type Kind int

const (
	// Authentication & authorization
	AuthMissingToken Kind = iota + 1
	AuthInvalidToken
	AuthInvalidCredentials
	AuthAccessDenied

	// Users
	UserUsernameExists
	UserEmailExists
	UserNotFound
	UserInvalidData

	// Posts
	PostNotFound
	PostAccessDenied
	PostInvalidData

	// Comments
	CommentNotFound
	CommentAccessDenied
	CommentInvalidData

	// Likes
	LikeAlreadyExists
	LikeNotFound

	// Validation
	ValidationFailed
	ValidationConstraintViolation

	// System
	SystemInternal
	SystemServiceUnavailable
	SystemDatabase
)

type kindInfo struct {
	name     string
	code     string
	message  string
	severity Severity
}

var kinds = map[Kind]kindInfo{
	AuthMissingToken:       {"AUTH_MISSING_TOKEN", "AUTH_001", "Authentication token is missing", SeverityUnauthenticated},
	AuthInvalidToken:       {"AUTH_INVALID_TOKEN", "AUTH_002", "Authentication token is invalid or expired", SeverityUnauthenticated},
	AuthInvalidCredentials: {"AUTH_INVALID_CREDENTIALS", "AUTH_003", "Invalid email or password", SeverityUnauthenticated},
	AuthAccessDenied:       {"AUTH_ACCESS_DENIED", "AUTH_004", "Access denied to this resource", SeverityForbidden},

	UserUsernameExists: {"USER_USERNAME_EXISTS", "USER_001", "Username already exists", SeverityConflict},
	UserEmailExists:    {"USER_EMAIL_EXISTS", "USER_002", "Email already exists", SeverityConflict},
	UserNotFound:       {"USER_NOT_FOUND", "USER_003", "User not found", SeverityNotFound},
	UserInvalidData:    {"USER_INVALID_DATA", "USER_004", "Invalid user data provided", SeverityInvalid},

	PostNotFound:     {"POST_NOT_FOUND", "POST_001", "Post not found", SeverityNotFound},
	PostAccessDenied: {"POST_ACCESS_DENIED", "POST_002", "You are not authorized to modify this post", SeverityForbidden},
	PostInvalidData:  {"POST_INVALID_DATA", "POST_003", "Invalid post data provided", SeverityInvalid},

	CommentNotFound:     {"COMMENT_NOT_FOUND", "COMMENT_001", "Comment not found", SeverityNotFound},
	CommentAccessDenied: {"COMMENT_ACCESS_DENIED", "COMMENT_002", "You are not authorized to modify this comment", SeverityForbidden},
	CommentInvalidData:  {"COMMENT_INVALID_DATA", "COMMENT_003", "Invalid comment data provided", SeverityInvalid},

	LikeAlreadyExists: {"LIKE_ALREADY_EXISTS", "LIKE_001", "Like already exists", SeverityConflict},
	LikeNotFound:      {"LIKE_NOT_FOUND", "LIKE_002", "Like not found", SeverityNotFound},

	ValidationFailed:              {"VALIDATION_FAILED", "VALIDATION_001", "Input validation failed", SeverityInvalid},
	ValidationConstraintViolation: {"VALIDATION_CONSTRAINT_VIOLATION", "VALIDATION_002", "Constraint validation failed", SeverityInvalid},

	SystemInternal:           {"SYSTEM_INTERNAL_ERROR", "SYSTEM_001", "An unexpected error occurred", SeverityInternal},
	SystemServiceUnavailable: {"SYSTEM_SERVICE_UNAVAILABLE", "SYSTEM_002", "Service temporarily unavailable", SeverityUnavailable},
	SystemDatabase:           {"SYSTEM_DATABASE_ERROR", "SYSTEM_003", "Database operation failed", SeverityInternal},
}

func (k Kind) info() kindInfo {
	if in, ok := kinds[k]; ok {
		return in
	}
	return kinds[SystemInternal]
}

// Name is the symbolic name, e.g. LIKE_ALREADY_EXISTS.
func (k Kind) Name() string { return k.info().name }

// Code is the stable machine code, e.g. LIKE_001.
func (k Kind) Code() string { return k.info().code }

// Message is the default human readable message.
func (k Kind) Message() string { return k.info().message }

// Severity reports how the kind is surfaced.
func (k Kind) Severity() Severity { return k.info().severity }

// HTTPStatus is shorthand for k.Severity().HTTPStatus().
func (k Kind) HTTPStatus() int { return k.info().severity.HTTPStatus() }

func (k Kind) String() string { return k.Name() }

func (k Kind) Error() string { return k.Message() }

// Kinds returns every member of the taxonomy in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := AuthMissingToken; k <= SystemDatabase; k++ {
		out = append(out, k)
	}
	return out
}

// Error is a typed domain failure.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries field-level validation errors, keyed by field name.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Message()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a Kind target so callers can write errors.Is(err, apperr.PostNotFound).
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// PublicMessage is the message safe to show to callers.
func (e *Error) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Message()
}

// New returns an error of kind k carrying the default message.
func New(k Kind) *Error {
	return &Error{Kind: k}
}

// Newf returns an error of kind k with a custom message.
func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause. The cause is logged by the boundary but never sent
// to the caller.
func Wrap(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err}
}

// Validation returns a VALIDATION_FAILED error carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: ValidationFailed, Fields: fields}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}
