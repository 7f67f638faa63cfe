package errors

import "net/http"

// Error code constants. Errors carry code + message; the console surfaces the
// message verbatim and may key localized strings off the code.

// Template error codes.
const (
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeTemplateExists     = "TEMPLATE_ALREADY_EXISTS"
	CodeTemplateInUse      = "TEMPLATE_IN_USE"
	CodeFieldKindInvalid   = "FIELD_KIND_INVALID"
	CodeFieldNameDuplicate = "FIELD_NAME_DUPLICATE"
)

// Instance error codes.
const (
	CodeInstanceNotFound   = "INSTANCE_NOT_FOUND"
	CodeInstanceCreateFail = "INSTANCE_CREATION_FAILED"
	CodeInstanceUpdateFail = "INSTANCE_UPDATE_FAILED"
	CodeValueInvalid       = "VALUE_INVALID"
)

// Catalog error codes.
const (
	CodeProjectNotFound     = "PROJECT_NOT_FOUND"
	CodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	CodeTeamNotFound        = "TEAM_NOT_FOUND"
	CodeJobPositionNotFound = "JOB_POSITION_NOT_FOUND"
)

// User/auth error codes.
const (
	CodeUserExists       = "USER_ALREADY_EXISTS"
	CodeLoginFailed      = "LOGIN_FAILED"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodePasswordMismatch = "PASSWORD_MISMATCH"
)

// Validation error codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeImportFailed     = "IMPORT_FAILED"
)

// Convenience constructors using predefined codes.

// ErrTemplateNotFound creates a template not found error.
func ErrTemplateNotFound() *AppError {
	return &AppError{
		Code:       CodeTemplateNotFound,
		Message:    "template not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ErrInstanceNotFound creates an instance not found error.
func ErrInstanceNotFound() *AppError {
	return &AppError{
		Code:       CodeInstanceNotFound,
		Message:    "record not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ErrTemplateInUse creates a conflict error for deleting a template that
// still has live instances.
func ErrTemplateInUse() *AppError {
	return &AppError{
		Code:       CodeTemplateInUse,
		Message:    "template has existing records and cannot be deleted",
		HTTPStatus: http.StatusConflict,
	}
}

// ErrLoginFailed creates a generic login failure (never reveals which
// credential was wrong).
func ErrLoginFailed() *AppError {
	return &AppError{
		Code:       CodeLoginFailed,
		Message:    "invalid username or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}
