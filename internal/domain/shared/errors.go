package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the reconciliation domain
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeBusinessRule        = "BUSINESS_RULE_VIOLATION"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
)

// NewValidationError creates an error for malformed input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewBusinessRuleViolation creates an error for state-machine or invariant violations
func NewBusinessRuleViolation(message string) *DomainError {
	return NewDomainError(CodeBusinessRule, message)
}

// NewForbiddenError creates an error for insufficient actor privileges
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// Common domain errors
var (
	ErrNotFound  = NewDomainError(CodeNotFound, "Resource not found")
	ErrForbidden = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// HasCode reports whether err is a DomainError with the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

// IsBusinessRule reports whether err is a business rule violation
func IsBusinessRule(err error) bool {
	return HasCode(err, CodeBusinessRule)
}

// IsForbidden reports whether err is a forbidden error
func IsForbidden(err error) bool {
	return HasCode(err, CodeForbidden)
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
