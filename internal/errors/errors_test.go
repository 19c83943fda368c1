package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	err := AlreadyScored("team-1", "judge1")

	assert.True(t, stderrors.Is(err, ErrAlreadyScored))
	assert.False(t, stderrors.Is(err, ErrTeamNotFound))

	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrAlreadyScored))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := DatabaseError("failed to write", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), ErrCodeDatabaseError)
}

func TestConstructorRecordsCaller(t *testing.T) {
	err := TeamNotFound("abc")

	assert.Contains(t, err.File, "errors_test.go")
	assert.NotZero(t, err.Line)
	assert.Equal(t, "team abc not found", err.Message)
}

func TestWithOperationAndDetails(t *testing.T) {
	err := InvalidScore("bad").WithOperation("SubmitScore").WithDetails("impact")

	assert.Equal(t, "SubmitScore", err.Operation)
	assert.Equal(t, "impact", err.Details)
}

func TestCodeAndMessage(t *testing.T) {
	assert.Equal(t, ErrCodeUnknownCategory, Code(UnknownCategory("Gold")))
	assert.Equal(t, ErrCodeInternalError, Code(stderrors.New("boom")))
	assert.Equal(t, "internal server error", Message(stderrors.New("secret detail")))
	assert.Equal(t, "at least one team must be selected", Message(fmt.Errorf("x: %w", EmptySelection())))
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{UnsupportedFormat("pdf"), http.StatusUnsupportedMediaType},
		{MalformedFile("bad", nil), http.StatusBadRequest},
		{InvalidScore("bad"), http.StatusBadRequest},
		{TeamNotFound("x"), http.StatusNotFound},
		{JudgeNotFound("x"), http.StatusNotFound},
		{AlreadyScored("x", "y"), http.StatusConflict},
		{EmptySelection(), http.StatusBadRequest},
		{UnknownTeam("x"), http.StatusBadRequest},
		{UnknownCategory("x"), http.StatusBadRequest},
		{CertificateNotFound("x"), http.StatusNotFound},
		{CertificateCollision(nil), http.StatusInternalServerError},
		{Unauthorized("x", nil), http.StatusUnauthorized},
		{Forbidden("x", nil), http.StatusForbidden},
		{ValidationError("x", nil), http.StatusBadRequest},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(Code(tc.err), func(t *testing.T) {
			assert.Equal(t, tc.expected, HTTPStatus(tc.err))
		})
	}
}
