package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Chat session errors
	CodeSessionBusy       ErrorCode = "SESSION_BUSY"
	CodeEmptyMessage      ErrorCode = "EMPTY_MESSAGE"
	CodeInvalidAttachment ErrorCode = "INVALID_ATTACHMENT"
	CodeModelService      ErrorCode = "MODEL_SERVICE_ERROR"

	// Orientation quiz errors
	CodeRunNotFound   ErrorCode = "RUN_NOT_FOUND"
	CodeRunFinished   ErrorCode = "RUN_FINISHED"
	CodeInvalidOption ErrorCode = "INVALID_OPTION"

	// Media errors
	CodeSpeechService ErrorCode = "SPEECH_SERVICE_ERROR"
	CodeVideoService  ErrorCode = "VIDEO_SERVICE_ERROR"
	CodeJobNotFound   ErrorCode = "JOB_NOT_FOUND"
	CodeJobNotReady   ErrorCode = "JOB_NOT_READY"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewSessionBusyError() *DomainError {
	return NewError(CodeSessionBusy, "A message is already being processed", nil)
}

func NewEmptyMessageError() *DomainError {
	return NewError(CodeEmptyMessage, "Either text or an attachment is required", nil)
}

func NewInvalidAttachmentError(mediaType string) *DomainError {
	return NewError(CodeInvalidAttachment, fmt.Sprintf("Unsupported attachment type: %s", mediaType), nil)
}

func NewModelServiceError(cause error) *DomainError {
	return NewError(CodeModelService, "Failed to get a reply from the model service", cause)
}

func NewRunNotFoundError(runID string) *DomainError {
	return NewError(CodeRunNotFound, fmt.Sprintf("Quiz run not found: %s", runID), nil)
}

func NewRunFinishedError(runID string) *DomainError {
	return NewError(CodeRunFinished, fmt.Sprintf("Quiz run already finished: %s", runID), nil)
}

func NewInvalidOptionError(index int) *DomainError {
	return NewError(CodeInvalidOption, fmt.Sprintf("Invalid option index: %d", index), nil)
}

func NewSpeechServiceError(cause error) *DomainError {
	return NewError(CodeSpeechService, "Failed to synthesize speech", cause)
}

func NewVideoServiceError(message string, cause error) *DomainError {
	return NewError(CodeVideoService, message, cause)
}

func NewJobNotFoundError(jobID string) *DomainError {
	return NewError(CodeJobNotFound, fmt.Sprintf("Animation job not found: %s", jobID), nil)
}
