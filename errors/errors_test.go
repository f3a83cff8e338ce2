package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeUnauthorized, "no", http.StatusUnauthorized)
	if err.Code != ErrCodeUnauthorized {
		t.Errorf("expected code %s, got %s", ErrCodeUnauthorized, err.Code)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("UNAUTHORIZED should not be retryable")
	}
}

func TestAppError_New_RateLimitedRetryable(t *testing.T) {
	if !New(ErrCodeRateLimited, "slow down", http.StatusTooManyRequests).Retryable {
		t.Error("RATE_LIMITED should be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTransient, "store down", http.StatusNotAcceptable)
	if !err.Retryable {
		t.Error("TRANSIENT_FAILURE should be retryable")
	}
}

func TestAppError_DuplicateUser(t *testing.T) {
	err := DuplicateUser("User alice already exists!", "alice")
	if err.HTTPStatus != http.StatusNotAcceptable {
		t.Errorf("expected 406, got %d", err.HTTPStatus)
	}
	if err.Details["username"] != "alice" {
		t.Errorf("expected username detail, got %v", err.Details["username"])
	}
	if err.Retryable {
		t.Error("duplicate user should not be retryable")
	}
}

func TestAppError_Transient_HidesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused")
	err := Transient("", cause)
	if err.Message == "" || strings.Contains(err.Message, "10.0.0.1") {
		t.Errorf("expected generic message, got %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	body := err.ToResponse()
	if strings.Contains(fmt.Sprint(body), "connection refused") {
		t.Error("cause must not appear in the response body")
	}
}

func TestAppError_InvalidToken_Reason(t *testing.T) {
	err := InvalidToken("expired")
	if err.Details["reason"] != "expired" {
		t.Errorf("expected reason detail, got %v", err.Details)
	}
	if InvalidToken("").Details != nil {
		t.Error("expected no details without a reason")
	}
}

func TestAppError_DefaultMessages(t *testing.T) {
	if Unauthorized("").Message == "" {
		t.Error("expected default unauthorized message")
	}
	if NotAcceptable("").Message == "" {
		t.Error("expected default not-acceptable message")
	}
	if got := NotAcceptable("log in again").Message; got != "log in again" {
		t.Errorf("expected custom message, got %q", got)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"DuplicateUser", DuplicateUser("exists", "bob"), ErrCodeUserExists, http.StatusNotAcceptable, false},
		{"Transient", Transient("", nil), ErrCodeTransient, http.StatusNotAcceptable, true},
		{"Unauthorized", Unauthorized("bad"), ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{"InvalidToken", InvalidToken(""), ErrCodeInvalidToken, http.StatusUnauthorized, false},
		{"NotAcceptable", NotAcceptable(""), ErrCodeNotAcceptable, http.StatusNotAcceptable, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := Unauthorized("Wrong password!")
	if got := err.Error(); got != "UNAUTHORIZED: Wrong password!" {
		t.Errorf("unexpected format: %q", got)
	}

	withCause := Internal(fmt.Errorf("boom"))
	if !strings.Contains(withCause.Error(), "(cause: boom)") {
		t.Errorf("expected cause in error string, got %q", withCause.Error())
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := DuplicateUser("taken", "bob").ToResponse()
	if resp.Error.Code != ErrCodeUserExists {
		t.Errorf("expected code USER_ALREADY_EXISTS in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["username"] != "bob" {
		t.Error("expected username=bob in response details")
	}
}

func TestAppError_AsAppError_Wrapped(t *testing.T) {
	appErr := NotAcceptable("")
	wrapped := fmt.Errorf("guard: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok || got != appErr {
		t.Fatal("expected AsAppError to unwrap to the original AppError")
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail for plain error")
	}
}

func TestErrorCode_IsRetryableCode_Table(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeTransient, ErrCodeRateLimited} {
		if !IsRetryableCode(code) {
			t.Errorf("expected %s to be retryable", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeUserExists, ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeNotAcceptable, ErrCodeInternal} {
		if IsRetryableCode(code) {
			t.Errorf("expected %s to NOT be retryable", code)
		}
	}
}
