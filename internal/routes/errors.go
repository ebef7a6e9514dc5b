package routes

import (
	"errors"
	"net/http"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/pass"
	"visitor-pass-console/internal/session"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
)

// ErrorInfo is what a client is told about a failure.
type ErrorInfo struct {
	Message   string
	StopCodes []string
}

type knownError struct {
	err    error
	status int
	info   ErrorInfo
}

// knownErrors is matched top to bottom with errors.Is.
var knownErrors = []knownError{
	{ErrInvalidRequest, http.StatusBadRequest, ErrorInfo{"Invalid request format", []string{"INVALID_REQUEST"}}},

	{ErrUnauthorized, http.StatusUnauthorized, ErrorInfo{"Authentication required", []string{"AUTH_REQUIRED"}}},
	{session.ErrInvalidCredentials, http.StatusUnauthorized, ErrorInfo{"Invalid username or password", []string{"AUTH_INVALID_CREDENTIALS"}}},
	{jwt.ErrNonValidToken, http.StatusUnauthorized, ErrorInfo{"Invalid or expired token", []string{"AUTH_INVALID_TOKEN"}}},

	{ErrForbidden, http.StatusForbidden, ErrorInfo{access.DeniedNotice, []string{"FORBIDDEN"}}},

	{collection.ErrNotFound, http.StatusNotFound, ErrorInfo{"Record not found", []string{"NOT_FOUND"}}},

	{model.ErrInvalidTransition, http.StatusConflict, ErrorInfo{"Visitor status cannot change this way", []string{"INVALID_TRANSITION"}}},
	{pass.ErrNotApproved, http.StatusConflict, ErrorInfo{"Only approved visitors receive a pass", []string{"VISITOR_NOT_APPROVED"}}},

	{ErrInternalServer, http.StatusInternalServerError, ErrorInfo{Message: "An internal error occurred"}},
}

var validationInfo = ErrorInfo{"Some fields are missing or invalid", []string{"VALIDATION_FAILED"}}

func lookupError(err error) (int, ErrorInfo, bool) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationInfo, true
	}

	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.status, k.info, true
		}
	}
	return http.StatusInternalServerError, ErrorInfo{}, false
}

// GetErrorStatus returns the HTTP status for err, 500 when it is not recognised.
func GetErrorStatus(err error) int {
	status, _, _ := lookupError(err)
	return status
}

// GetErrorInfo returns the client-facing message and stop codes for err.
// Unrecognised errors never leak their text.
func GetErrorInfo(err error) ErrorInfo {
	_, info, ok := lookupError(err)
	if !ok {
		return ErrorInfo{Message: "An internal error occurred"}
	}
	return info
}
