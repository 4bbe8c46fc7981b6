package waybill

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an APIError.
type ErrorKind string

const (
	// ErrorKindHTTP marks a failure derived from a non-200 HTTP status.
	ErrorKindHTTP ErrorKind = "HTTP_ERROR"

	// ErrorKindBusiness marks a payload-level failure: the response arrived
	// with status 200 but its envelope carried a non-success code.
	ErrorKindBusiness ErrorKind = "BUSINESS_ERROR"

	// ErrorKindNetwork marks an unclassified transport failure.
	ErrorKindNetwork ErrorKind = "NETWORK_ERROR"

	// ErrorKindTimeout marks a transport attempt that ran out of time.
	ErrorKindTimeout ErrorKind = "TIMEOUT_ERROR"

	// ErrorKindConnection marks a failure to reach the remote endpoint.
	ErrorKindConnection ErrorKind = "CONNECTION_ERROR"

	// ErrorKindAbort marks a request cancelled by its caller.
	ErrorKindAbort ErrorKind = "ABORT_ERROR"
)

// APIError is the single failure shape that crosses every layer boundary.
// Kind tells the caller which taxonomy Code belongs to: for ErrorKindHTTP it
// is the HTTP status, for ErrorKindBusiness the envelope code, and for the
// transport kinds it is zero.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code,omitempty"`
	Message string    `json:"message"`

	// SessionExpired is set when a 401 survived the token-refresh protocol,
	// signalling the caller to surface a login flow.
	SessionExpired bool `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (code: %d)", e.Kind, e.Message, e.Code)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Transient reports whether the failure was transport-level, i.e. already
// retried up to the configured bound before being surfaced.
func (e *APIError) Transient() bool {
	switch e.Kind {
	case ErrorKindNetwork, ErrorKindTimeout, ErrorKindConnection, ErrorKindAbort:
		return true
	default:
		return false
	}
}

// Fixed user-facing messages per HTTP status class.
const (
	MsgGenericFailure   = "Request failed, please try again later"
	MsgForbidden        = "Permission denied"
	MsgNotFound         = "Requested resource does not exist"
	MsgServerBusy       = "Server busy, please try again later"
	MsgNetworkFailure   = "Network connection failed, please check your network"
	MsgRequestTimeout   = "Request timed out, please try again later"
	MsgRequestCancelled = "Request cancelled"
	MsgSessionExpired   = "Session expired, please log in again"
)

// businessMessages maps well-known envelope codes to fixed human messages.
// Unknown codes fall back to the server-supplied message, then to a generic
// string.
var businessMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request parameters",
	http.StatusUnauthorized:        MsgSessionExpired,
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            MsgNotFound,
	http.StatusInternalServerError: MsgServerBusy,
	1001:                           "Incorrect account or password",
	1002:                           "Account has been disabled",
	1003:                           "Incorrect verification code",
	1004:                           "Verification code has expired",
}

// BusinessErrorMessage resolves a business error code to a user-facing
// message. requiresAuth changes the 401 wording: unauthenticated endpoints
// returning 401 are not a session problem for the user.
func BusinessErrorMessage(code int, serverMessage string, requiresAuth bool) string {
	if code == http.StatusUnauthorized && !requiresAuth {
		return MsgGenericFailure
	}

	if msg, ok := businessMessages[code]; ok {
		return msg
	}

	if serverMessage != "" {
		return serverMessage
	}

	return "Operation failed, please try again later"
}

// NewHTTPError builds an APIError for a non-200 status.
func NewHTTPError(status int, message string) *APIError {
	return &APIError{Kind: ErrorKindHTTP, Code: status, Message: message}
}

// NewBusinessError builds an APIError for a payload-level failure.
func NewBusinessError(code int, message string) *APIError {
	return &APIError{Kind: ErrorKindBusiness, Code: code, Message: message}
}

// NewSessionExpiredError builds the 401-flavored error produced when a token
// refresh fails.
func NewSessionExpiredError() *APIError {
	return &APIError{
		Kind:           ErrorKindHTTP,
		Code:           http.StatusUnauthorized,
		Message:        MsgSessionExpired,
		SessionExpired: true,
	}
}

// Static errors wrapped with context at call sites.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrCacheMiss         = errors.New("cache miss")
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
	ErrCacheDisabled     = errors.New("cache disabled")
	ErrNoOpenIdentifier  = errors.New("no open identifier from a prior login attempt")
	ErrPhoneCodeRequired = errors.New("phone verification code is required")
	ErrLoginCodeRequired = errors.New("platform login code is required")
	ErrNotLoggedIn       = errors.New("not logged in")
)

// IsUnauthorized reports whether err is an HTTP 401 APIError.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindHTTP && apiErr.Code == http.StatusUnauthorized
	}

	return false
}

// IsNotFound reports whether err is an HTTP 404 APIError.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindHTTP && apiErr.Code == http.StatusNotFound
	}

	return false
}

// IsForbidden reports whether err is an HTTP 403 APIError.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindHTTP && apiErr.Code == http.StatusForbidden
	}

	return false
}

// IsSessionExpired reports whether err marks a failed token refresh. Callers
// use this to route the user to a login surface.
func IsSessionExpired(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.SessionExpired
	}

	return false
}

// IsTransport reports whether err is a transport-level APIError, i.e. the
// request never produced an HTTP status.
func IsTransport(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}

	return false
}

// IsBusiness reports whether err is a payload-level APIError.
func IsBusiness(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindBusiness
	}

	return false
}
