// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode defines the stable machine codes returned on the wire
// Values are names, not ordinals; add sparingly and never renumber meaning away
type ErrorCode string

const (
	// ErrorCodeUnknown is for unclassified errors, never emitted on the wire directly
	ErrorCodeUnknown ErrorCode = "UNKNOWN"

	// Authentication failures (HTTP 401)

	// ErrorCodeProjectKeyMissing is returned when X-Project-Key is absent
	ErrorCodeProjectKeyMissing ErrorCode = "PROJECT_KEY_MISSING"

	// ErrorCodeSignatureMissing is returned when X-Signature is absent
	ErrorCodeSignatureMissing ErrorCode = "SIGNATURE_MISSING"

	// ErrorCodeAdminTokenMissing is returned when X-Admin-Token is absent in admin mode
	ErrorCodeAdminTokenMissing ErrorCode = "ADMIN_TOKEN_MISSING"

	// ErrorCodeProjectNotFound is returned when the project key does not resolve to a project
	ErrorCodeProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"

	// ErrorCodeSignatureInvalid is returned when the HMAC signature does not match
	ErrorCodeSignatureInvalid ErrorCode = "SIGNATURE_INVALID"

	// ErrorCodeAdminTokenInvalid is returned when the admin token does not match
	ErrorCodeAdminTokenInvalid ErrorCode = "ADMIN_TOKEN_INVALID"

	// ErrorCodeDatabaseError is returned when the registry lookup itself fails
	ErrorCodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Validation failures (HTTP 400)

	// ErrorCodeProjectRequired is returned when no project could be resolved for the request
	ErrorCodeProjectRequired ErrorCode = "PROJECT_REQUIRED"

	// ErrorCodeTooManyEvents is returned when a batch exceeds MAX_EVENTS_PER_POST
	ErrorCodeTooManyEvents ErrorCode = "TOO_MANY_EVENTS"

	// ErrorCodeInvalidEventData is returned when an event fails LogEvent validation
	ErrorCodeInvalidEventData ErrorCode = "INVALID_EVENT_DATA"

	// Rate-limit failures (HTTP 429)

	// ErrorCodeIPRateLimitExceeded is returned when the per-address tier is exhausted
	ErrorCodeIPRateLimitExceeded ErrorCode = "IP_RATE_LIMIT_EXCEEDED"

	// ErrorCodeProjectRateLimitExceeded is returned when the per-project tier is exhausted
	ErrorCodeProjectRateLimitExceeded ErrorCode = "PROJECT_RATE_LIMIT_EXCEEDED"

	// ErrorCodeRateLimitExceeded is the generic rate-limit code for ambiguous tiers
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Infrastructure failures (HTTP 500)

	// ErrorCodeInternalError is the generic catch-all for unclassified server failures
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"

	// ErrorCodeDBQueryFailed is returned when a read query fails
	ErrorCodeDBQueryFailed ErrorCode = "DB_QUERY_FAILED"

	// ErrorCodeDBInsertFailed is returned when a single-row insert fails
	ErrorCodeDBInsertFailed ErrorCode = "DB_INSERT_FAILED"

	// ErrorCodeDBBulkInsertFailed is returned when a multi-row insert fails
	ErrorCodeDBBulkInsertFailed ErrorCode = "DB_BULK_INSERT_FAILED"

	// ErrorCodeDBNotInitialized is returned when a store operation runs before the pool is ready
	ErrorCodeDBNotInitialized ErrorCode = "DB_NOT_INITIALIZED"
)

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeProjectKeyMissing, ErrorCodeSignatureMissing, ErrorCodeAdminTokenMissing,
		ErrorCodeProjectNotFound, ErrorCodeSignatureInvalid, ErrorCodeAdminTokenInvalid,
		ErrorCodeDatabaseError:
		return http.StatusUnauthorized
	case ErrorCodeProjectRequired, ErrorCodeTooManyEvents, ErrorCodeInvalidEventData:
		return http.StatusBadRequest
	case ErrorCodeIPRateLimitExceeded, ErrorCodeProjectRateLimitExceeded, ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrorCodeInternalError, ErrorCodeDBQueryFailed, ErrorCodeDBInsertFailed,
		ErrorCodeDBBulkInsertFailed, ErrorCodeDBNotInitialized, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsRateLimitCode reports whether c belongs to the rate-limit taxonomy
// (used to decide whether a Retry-After header is owed)
func IsRateLimitCode(c ErrorCode) bool {
	switch c {
	case ErrorCodeIPRateLimitExceeded, ErrorCodeProjectRateLimitExceeded, ErrorCodeRateLimitExceeded:
		return true
	default:
		return false
	}
}

// IsInfraCode reports whether c belongs to the infrastructure taxonomy
// (used to decide whether an errorId is owed and details suppressed)
func IsInfraCode(c ErrorCode) bool {
	return HTTPStatusCode(c) == http.StatusInternalServerError
}

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(ErrorCodeProjectNotFound, "not found")

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON-serializable form returned by the API, matching the
// ingestion HTTP surface's failure shape: {error, code} plus errorId on 5xx
type Wire struct {
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	ErrorID string    `json:"errorId,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to a Wire payload. errorID is only attached by
// callers for infrastructure-class errors; validation/auth/rate-limit codes
// never carry one (per the ingestion error taxonomy)
func (e *Error) ToWire(errorID string) Wire {
	w := Wire{Error: e.msg, Code: e.code}
	if IsInfraCode(e.code) {
		w.ErrorID = errorID
	}
	return w
}

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error, errorID string) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire(errorID)
	}
	return Wire{Error: err.Error(), Code: ErrorCodeInternalError, ErrorID: errorID}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// WithFieldChain sets field on *Error or wraps a foreign error into an *Error with Unknown code (copy-on-write)
func WithFieldChain(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return &Error{code: ErrorCodeUnknown, msg: err.Error(), field: field, orig: err}
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar matching the ingestion error taxonomy directly

// ProjectKeyMissingf returns a missing-project-key auth error
func ProjectKeyMissingf(format string, a ...any) error {
	return Newf(ErrorCodeProjectKeyMissing, format, a...)
}

// SignatureMissingf returns a missing-signature auth error
func SignatureMissingf(format string, a ...any) error {
	return Newf(ErrorCodeSignatureMissing, format, a...)
}

// AdminTokenMissingf returns a missing-admin-token auth error
func AdminTokenMissingf(format string, a ...any) error {
	return Newf(ErrorCodeAdminTokenMissing, format, a...)
}

// ProjectNotFoundf returns a project-not-found auth error
func ProjectNotFoundf(format string, a ...any) error {
	return Newf(ErrorCodeProjectNotFound, format, a...)
}

// SignatureInvalidf returns an invalid-signature auth error
func SignatureInvalidf(format string, a ...any) error {
	return Newf(ErrorCodeSignatureInvalid, format, a...)
}

// AdminTokenInvalidf returns an invalid-admin-token auth error
func AdminTokenInvalidf(format string, a ...any) error {
	return Newf(ErrorCodeAdminTokenInvalid, format, a...)
}

// DatabaseErrorf returns a registry-lookup database error (auth-path 401)
func DatabaseErrorf(format string, a ...any) error {
	return Newf(ErrorCodeDatabaseError, format, a...)
}

// ProjectRequiredf returns a missing-project validation error
func ProjectRequiredf(format string, a ...any) error {
	return Newf(ErrorCodeProjectRequired, format, a...)
}

// TooManyEventsf returns a batch-too-large validation error
func TooManyEventsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyEvents, format, a...)
}

// InvalidEventDataf returns an event-schema validation error
func InvalidEventDataf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidEventData, format, a...)
}

// IPRateLimitExceededf returns a per-address rate-limit error
func IPRateLimitExceededf(format string, a ...any) error {
	return Newf(ErrorCodeIPRateLimitExceeded, format, a...)
}

// ProjectRateLimitExceededf returns a per-project rate-limit error
func ProjectRateLimitExceededf(format string, a ...any) error {
	return Newf(ErrorCodeProjectRateLimitExceeded, format, a...)
}

// RateLimitExceededf returns a generic rate-limit error
func RateLimitExceededf(format string, a ...any) error {
	return Newf(ErrorCodeRateLimitExceeded, format, a...)
}

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeInternalError, format, a...) }

// DBQueryFailedf returns a read-query failure
func DBQueryFailedf(format string, a ...any) error {
	return Newf(ErrorCodeDBQueryFailed, format, a...)
}

// DBInsertFailedf returns a single-row insert failure
func DBInsertFailedf(format string, a ...any) error {
	return Newf(ErrorCodeDBInsertFailed, format, a...)
}

// DBBulkInsertFailedf returns a multi-row insert failure
func DBBulkInsertFailedf(format string, a ...any) error {
	return Newf(ErrorCodeDBBulkInsertFailed, format, a...)
}

// DBNotInitializedf returns a not-ready store error
func DBNotInitializedf(format string, a ...any) error {
	return Newf(ErrorCodeDBNotInitialized, format, a...)
}

// HTTP bundles status + wire in one shot (nice for handlers). errorID should
// be a freshly minted correlation id; it is only surfaced for infra codes
func HTTP(err error, errorID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err, errorID)
}

// Retry semantics

// Retryable reports whether the error is retryable. Delegates to backend-specific logic.
// Currently backed by Postgres helpers in pg.go (IsRetryable), and can be extended.
func Retryable(err error) bool { return IsRetryable(err) }
