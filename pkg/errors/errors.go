package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
	ErrConflict          = errors.New("conflict")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPaymentDeclined   = errors.New("payment declined")
	ErrSubmissionTimeout = errors.New("submission timed out")
	ErrSubmitInFlight    = errors.New("submission already in flight")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(resource, field, value string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// EmptyCart creates a 409 error for checkout entered with no items.
func EmptyCart() *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: "your cart is empty",
		Status:  http.StatusConflict,
		Err:     ErrEmptyCart,
	}
}

// PaymentDeclined creates a 422 error carrying the gateway's message verbatim.
func PaymentDeclined(message string) *AppError {
	return &AppError{
		Code:    "PAYMENT_DECLINED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrPaymentDeclined,
	}
}

// SubmissionTimeout creates a 504 error for a gateway call that exceeded its deadline.
func SubmissionTimeout(message string) *AppError {
	return &AppError{
		Code:    "SUBMISSION_TIMEOUT",
		Message: message,
		Status:  http.StatusGatewayTimeout,
		Err:     ErrSubmissionTimeout,
	}
}

// SubmitInFlight creates a 409 error for a submit attempted while one is in flight.
func SubmitInFlight() *AppError {
	return &AppError{
		Code:    "SUBMIT_IN_FLIGHT",
		Message: "a submission is already being processed",
		Status:  http.StatusConflict,
		Err:     ErrSubmitInFlight,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrPaymentDeclined):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSubmissionTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
