package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError represents an application-specific error
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code, so the
// sentinels below can be used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	return newAppError(code, message, cause, 2)
}

func newAppError(code, message string, cause error, skip int) *AppError {
	_, file, line, _ := runtime.Caller(skip)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Common error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeServiceError    = "SERVICE_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
)

// Roster import codes
const (
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeMalformedFile     = "MALFORMED_FILE"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeDuplicateTeam     = "DUPLICATE_TEAM"
	ErrCodeMemberCount       = "MEMBER_COUNT"
	ErrCodeInvalidEmail      = "INVALID_EMAIL"
	ErrCodeInvalidGender     = "INVALID_GENDER"
	ErrCodeDiversityRule     = "DIVERSITY_RULE"
	ErrCodeDuplicateEmail    = "DUPLICATE_EMAIL"
)

// Scoring codes
const (
	ErrCodeInvalidScore  = "INVALID_SCORE"
	ErrCodeTeamNotFound  = "TEAM_NOT_FOUND"
	ErrCodeJudgeNotFound = "JUDGE_NOT_FOUND"
	ErrCodeAlreadyScored = "ALREADY_SCORED"
)

// Certificate codes
const (
	ErrCodeEmptySelection       = "EMPTY_SELECTION"
	ErrCodeUnknownTeam          = "UNKNOWN_TEAM"
	ErrCodeUnknownCategory      = "UNKNOWN_CATEGORY"
	ErrCodeCertificateNotFound  = "CERTIFICATE_NOT_FOUND"
	ErrCodeCertificateCollision = "CERTIFICATE_COLLISION"
)

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrNotFound             = &AppError{Code: ErrCodeNotFound}
	ErrValidation           = &AppError{Code: ErrCodeValidationError}
	ErrConflict             = &AppError{Code: ErrCodeConflict}
	ErrUnsupportedFormat    = &AppError{Code: ErrCodeUnsupportedFormat}
	ErrMalformedFile        = &AppError{Code: ErrCodeMalformedFile}
	ErrMissingField         = &AppError{Code: ErrCodeMissingField}
	ErrDuplicateTeam        = &AppError{Code: ErrCodeDuplicateTeam}
	ErrMemberCount          = &AppError{Code: ErrCodeMemberCount}
	ErrInvalidEmail         = &AppError{Code: ErrCodeInvalidEmail}
	ErrInvalidGender        = &AppError{Code: ErrCodeInvalidGender}
	ErrDiversityRule        = &AppError{Code: ErrCodeDiversityRule}
	ErrDuplicateEmail       = &AppError{Code: ErrCodeDuplicateEmail}
	ErrInvalidScore         = &AppError{Code: ErrCodeInvalidScore}
	ErrTeamNotFound         = &AppError{Code: ErrCodeTeamNotFound}
	ErrJudgeNotFound        = &AppError{Code: ErrCodeJudgeNotFound}
	ErrAlreadyScored        = &AppError{Code: ErrCodeAlreadyScored}
	ErrEmptySelection       = &AppError{Code: ErrCodeEmptySelection}
	ErrUnknownTeam          = &AppError{Code: ErrCodeUnknownTeam}
	ErrUnknownCategory      = &AppError{Code: ErrCodeUnknownCategory}
	ErrCertificateNotFound  = &AppError{Code: ErrCodeCertificateNotFound}
	ErrCertificateCollision = &AppError{Code: ErrCodeCertificateCollision}
	ErrUnauthorized         = &AppError{Code: ErrCodeUnauthorized}
	ErrForbidden            = &AppError{Code: ErrCodeForbidden}
)

// Common error constructors
func NotFound(message string, cause error) *AppError {
	return newAppError(ErrCodeNotFound, message, cause, 2)
}

func InvalidInput(message string, cause error) *AppError {
	return newAppError(ErrCodeInvalidInput, message, cause, 2)
}

func Unauthorized(message string, cause error) *AppError {
	return newAppError(ErrCodeUnauthorized, message, cause, 2)
}

func Forbidden(message string, cause error) *AppError {
	return newAppError(ErrCodeForbidden, message, cause, 2)
}

func InternalError(message string, cause error) *AppError {
	return newAppError(ErrCodeInternalError, message, cause, 2)
}

func DatabaseError(message string, cause error) *AppError {
	return newAppError(ErrCodeDatabaseError, message, cause, 2)
}

func ValidationError(message string, cause error) *AppError {
	return newAppError(ErrCodeValidationError, message, cause, 2)
}

func Conflict(message string, cause error) *AppError {
	return newAppError(ErrCodeConflict, message, cause, 2)
}

func ServiceError(message string, cause error) *AppError {
	return newAppError(ErrCodeServiceError, message, cause, 2)
}

// Roster import errors

// UnsupportedFormat rejects a roster file that is neither CSV nor XLSX
func UnsupportedFormat(format string) *AppError {
	return newAppError(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format %q: file must be CSV or XLSX", format), nil, 2)
}

// MalformedFile rejects a roster file that cannot be read as a whole
func MalformedFile(message string, cause error) *AppError {
	return newAppError(ErrCodeMalformedFile, message, cause, 2)
}

// MissingField reports a required roster column left empty
func MissingField(field string) *AppError {
	return newAppError(ErrCodeMissingField, fmt.Sprintf("%s is required", field), nil, 2)
}

// DuplicateTeam reports a team name already in the file or the store
func DuplicateTeam(name string) *AppError {
	return newAppError(ErrCodeDuplicateTeam, fmt.Sprintf("team %q already exists", name), nil, 2)
}

// MemberCount reports a team without the required number of members
func MemberCount(actual, required int) *AppError {
	return newAppError(ErrCodeMemberCount,
		fmt.Sprintf("team must have exactly %d members, found %d", required, actual), nil, 2)
}

// InvalidEmail reports a member email that does not parse
func InvalidEmail(member, email string) *AppError {
	return newAppError(ErrCodeInvalidEmail,
		fmt.Sprintf("member %q has an invalid email address %q", member, email), nil, 2)
}

// InvalidGender reports a gender value outside the configured vocabulary
func InvalidGender(member, value string) *AppError {
	return newAppError(ErrCodeInvalidGender,
		fmt.Sprintf("member %q has an unrecognized gender %q", member, value), nil, 2)
}

// DiversityViolation reports a team with no member of the required gender
func DiversityViolation(required string) *AppError {
	return newAppError(ErrCodeDiversityRule,
		fmt.Sprintf("team must have at least one %s member", required), nil, 2)
}

// DuplicateEmail reports an email shared by two members of one team
func DuplicateEmail(email string) *AppError {
	return newAppError(ErrCodeDuplicateEmail,
		fmt.Sprintf("email %q is used by more than one member", email), nil, 2)
}

// Scoring errors

// InvalidScore reports criteria that do not match the rubric
func InvalidScore(message string) *AppError {
	return newAppError(ErrCodeInvalidScore, message, nil, 2)
}

// TeamNotFound reports a team id with no stored team
func TeamNotFound(teamID string) *AppError {
	return newAppError(ErrCodeTeamNotFound, fmt.Sprintf("team %s not found", teamID), nil, 2)
}

// JudgeNotFound reports a judge id with no judge account
func JudgeNotFound(judgeID string) *AppError {
	return newAppError(ErrCodeJudgeNotFound, fmt.Sprintf("judge %s not found", judgeID), nil, 2)
}

// AlreadyScored reports a second score from the same judge for a team
func AlreadyScored(teamID, judgeID string) *AppError {
	return newAppError(ErrCodeAlreadyScored,
		fmt.Sprintf("judge %s has already scored team %s", judgeID, teamID), nil, 2)
}

// Certificate errors

// EmptySelection reports a request that selects no teams
func EmptySelection() *AppError {
	return newAppError(ErrCodeEmptySelection, "at least one team must be selected", nil, 2)
}

// UnknownTeam reports a selected team id that does not exist
func UnknownTeam(teamID string) *AppError {
	return newAppError(ErrCodeUnknownTeam, fmt.Sprintf("team %s does not exist", teamID), nil, 2)
}

// UnknownCategory reports a certificate type outside the allowed list
func UnknownCategory(category string) *AppError {
	return newAppError(ErrCodeUnknownCategory, fmt.Sprintf("unknown certificate type %q", category), nil, 2)
}

// CertificateNotFound reports a certificate id that was never issued
func CertificateNotFound(certificateID string) *AppError {
	return newAppError(ErrCodeCertificateNotFound, fmt.Sprintf("certificate %s not found", certificateID), nil, 2)
}

// CertificateCollision reports a generated certificate id that is already taken
func CertificateCollision(cause error) *AppError {
	return newAppError(ErrCodeCertificateCollision, "certificate id collision, batch aborted", cause, 2)
}

// Code returns the AppError code carried by err, or ErrCodeInternalError.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Message returns the user-facing message for err. Errors that are not
// AppErrors are reported generically.
func Message(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

var statusByCode = map[string]int{
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeUnauthorized:         http.StatusUnauthorized,
	ErrCodeForbidden:            http.StatusForbidden,
	ErrCodeValidationError:      http.StatusBadRequest,
	ErrCodeConflict:             http.StatusConflict,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeUnsupportedFormat:    http.StatusUnsupportedMediaType,
	ErrCodeMalformedFile:        http.StatusBadRequest,
	ErrCodeMissingField:         http.StatusBadRequest,
	ErrCodeDuplicateTeam:        http.StatusConflict,
	ErrCodeMemberCount:          http.StatusUnprocessableEntity,
	ErrCodeInvalidEmail:         http.StatusUnprocessableEntity,
	ErrCodeInvalidGender:        http.StatusUnprocessableEntity,
	ErrCodeDiversityRule:        http.StatusUnprocessableEntity,
	ErrCodeDuplicateEmail:       http.StatusUnprocessableEntity,
	ErrCodeInvalidScore:         http.StatusBadRequest,
	ErrCodeTeamNotFound:         http.StatusNotFound,
	ErrCodeJudgeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyScored:        http.StatusConflict,
	ErrCodeEmptySelection:       http.StatusBadRequest,
	ErrCodeUnknownTeam:          http.StatusBadRequest,
	ErrCodeUnknownCategory:      http.StatusBadRequest,
	ErrCodeCertificateNotFound:  http.StatusNotFound,
	ErrCodeCertificateCollision: http.StatusInternalServerError,
}

// HTTPStatus maps an error to the HTTP status a handler should answer with.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[Code(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
