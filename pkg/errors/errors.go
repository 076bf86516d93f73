// Package errors provides the typed errors used across bit.
// Commands inspect them with errors.Is / errors.As to print a category
// specific message instead of a raw trace.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New is errors.New, re-exported so callers need a single import.
var New = errors.New

// Is is errors.Is, re-exported for convenience.
var Is = errors.Is

// As is errors.As, re-exported for convenience.
var As = errors.As

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that the exchange key or secret is not configured.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the exchange rejected the key.
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrRateLimited indicates that the exchange rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates that the exchange is temporarily unavailable.
	ErrUnavailable = errors.New("service unavailable")

	// ErrCanceled indicates that an operation was canceled by the operator.
	ErrCanceled = errors.New("operation canceled")

	// ErrMissingDependency indicates that a previous step has not been run
	// (nothing cloned, nothing fetched) or an external tool is missing.
	ErrMissingDependency = errors.New("missing dependency")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error response from the exchange API.
type APIError struct {
	Service    string
	StatusCode int
	Code       int // exchange specific error code, 0 when absent
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "API error from %s", e.Service)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, " [code %d]", e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil && e.Err.Error() != e.Message {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 429 || e.StatusCode == 418:
		return target == ErrRateLimited
	case e.StatusCode == 401 || e.Code == -2014 || e.Code == -2015:
		return target == ErrAPIKeyInvalid
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// DependencyError indicates that a step ran before the step it depends on,
// or that a required external tool is not installed.
type DependencyError struct {
	Dependency string // what is missing, e.g. "published manifest"
	Path       string
	Hint       string // what the operator should do, e.g. "run 'bit clone'"
	Err        error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	msg := e.Dependency + " does not exist"
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *DependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// NewDependencyError creates a new DependencyError.
func NewDependencyError(dependency, path, hint string, err error) *DependencyError {
	return &DependencyError{
		Dependency: dependency,
		Path:       path,
		Hint:       hint,
		Err:        err,
	}
}

// ParseError represents an error when parsing data formats.
type ParseError struct {
	Format  string // "json", "yaml", "svg"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during file system operations.
type IOError struct {
	Operation string // "read", "write", "create", "delete", "copy", "move"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ProcessError represents a failure of an external process or library
// driven step (svgo, git clone).
type ProcessError struct {
	Operation string
	Command   string
	Output    string
	Err       error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError.
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// PhaseError records which build phase aborted a multi-phase run.
type PhaseError struct {
	Phase string
	Err   error
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("build %s failed: %v", e.Phase, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAPIKeyError checks if an error is related to API keys.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsCanceled checks if an error is a cancellation error.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsMissingDependency checks if an error means a previous step must run first.
func IsMissingDependency(err error) bool {
	return errors.Is(err, ErrMissingDependency)
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapPhase wraps an error as a PhaseError.
func WrapPhase(phase string, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Err: err}
}
