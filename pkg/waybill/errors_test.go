package waybill

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := NewHTTPError(http.StatusNotFound, MsgNotFound)
	assert.Equal(t, "HTTP_ERROR: Requested resource does not exist (code: 404)", err.Error())

	transportErr := &APIError{Kind: ErrorKindTimeout, Message: MsgRequestTimeout}
	assert.Equal(t, "TIMEOUT_ERROR: Request timed out, please try again later", transportErr.Error())
}

func TestAPIError_Transient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      ErrorKind
		transient bool
	}{
		{ErrorKindNetwork, true},
		{ErrorKindTimeout, true},
		{ErrorKindConnection, true},
		{ErrorKindAbort, true},
		{ErrorKindHTTP, false},
		{ErrorKindBusiness, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind}
			assert.Equal(t, tt.transient, err.Transient())
		})
	}
}

func TestBusinessErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		code          int
		serverMessage string
		requiresAuth  bool
		expected      string
	}{
		{"known code", 400, "", true, "Invalid request parameters"},
		{"known code overrides server message", 403, "anything", true, MsgForbidden},
		{"session wording on authenticated 401", 401, "", true, MsgSessionExpired},
		{"generic wording on anonymous 401", 401, "", false, MsgGenericFailure},
		{"credential error", 1001, "", true, "Incorrect account or password"},
		{"disabled account", 1002, "", true, "Account has been disabled"},
		{"wrong verification code", 1003, "", true, "Incorrect verification code"},
		{"expired verification code", 1004, "", true, "Verification code has expired"},
		{"unknown code falls back to server message", 9999, "custom failure", true, "custom failure"},
		{"unknown code without server message", 9999, "", true, "Operation failed, please try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BusinessErrorMessage(tt.code, tt.serverMessage, tt.requiresAuth))
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	t.Run("unauthorized", func(t *testing.T) {
		assert.True(t, IsUnauthorized(NewHTTPError(401, MsgGenericFailure)))
		assert.False(t, IsUnauthorized(NewHTTPError(403, MsgForbidden)))
		assert.False(t, IsUnauthorized(NewBusinessError(401, MsgSessionExpired)))
	})

	t.Run("not found", func(t *testing.T) {
		assert.True(t, IsNotFound(NewHTTPError(404, MsgNotFound)))
		assert.False(t, IsNotFound(NewHTTPError(500, MsgServerBusy)))
	})

	t.Run("forbidden", func(t *testing.T) {
		assert.True(t, IsForbidden(NewHTTPError(403, MsgForbidden)))
		assert.False(t, IsForbidden(NewHTTPError(404, MsgNotFound)))
	})

	t.Run("session expired", func(t *testing.T) {
		assert.True(t, IsSessionExpired(NewSessionExpiredError()))
		assert.False(t, IsSessionExpired(NewHTTPError(401, MsgGenericFailure)))
	})

	t.Run("transport", func(t *testing.T) {
		assert.True(t, IsTransport(&APIError{Kind: ErrorKindConnection}))
		assert.False(t, IsTransport(NewHTTPError(500, MsgServerBusy)))
	})

	t.Run("business", func(t *testing.T) {
		assert.True(t, IsBusiness(NewBusinessError(400, "")))
		assert.False(t, IsBusiness(NewHTTPError(400, "")))
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		wrapped := fmt.Errorf("searching waybill: %w", NewSessionExpiredError())
		assert.True(t, IsSessionExpired(wrapped))
		assert.True(t, IsUnauthorized(wrapped))
	})

	t.Run("plain errors never match", func(t *testing.T) {
		assert.False(t, IsUnauthorized(ErrCacheMiss))
		assert.False(t, IsSessionExpired(nil))
	})
}
