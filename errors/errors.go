package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Booking errors
	ErrCodeInvalidRange       ErrorCode = "INVALID_RANGE"
	ErrCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	ErrCodeRoomAlreadyBooked  ErrorCode = "ROOM_ALREADY_BOOKED"
	ErrCodeRoomNotAvailable   ErrorCode = "ROOM_NOT_AVAILABLE"
	ErrCodeCapacityExceeded   ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodePaymentRequired    ErrorCode = "PAYMENT_REQUIRED"
	ErrCodeRoomInUse          ErrorCode = "ROOM_IN_USE"
	ErrCodeConsistencyFault   ErrorCode = "CONSISTENCY_FAULT"
	ErrCodeLockTimeout        ErrorCode = "LOCK_TIMEOUT"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// Rating errors
	ErrCodeInvalidRating   ErrorCode = "INVALID_RATING"
	ErrCodeDuplicateRating ErrorCode = "DUPLICATE_RATING"

	// Lookup errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEmail  ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone  ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	ErrCodeUserExists    ErrorCode = "USER_EXISTS"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so khớp theo mã lỗi, cho phép errors.Is(err, ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Newf builds an AppError with a formatted message and no cause.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return NewAppError(code, fmt.Sprintf(format, args...), nil)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf trả về mã lỗi, rỗng nếu không phải AppError.
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRoomAlreadyBooked, ErrCodeRoomNotAvailable, ErrCodeInvalidTransition,
		ErrCodeDuplicateRating, ErrCodeRoomInUse, ErrCodeUserExists:
		return http.StatusConflict
	case ErrCodeInvalidRange, ErrCodeCapacityExceeded, ErrCodeInvalidRating, ErrCodePaymentRequired:
		return http.StatusUnprocessableEntity
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeInvalidEmail,
		ErrCodeInvalidPhone, ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case ErrCodeLockTimeout, ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Sentinel values for errors.Is matching. Only the code is compared.
var (
	ErrNotFound           = NewAppError(ErrCodeNotFound, "not found", nil)
	ErrInvalidRange       = NewAppError(ErrCodeInvalidRange, "invalid date range", nil)
	ErrInvalidTransition  = NewAppError(ErrCodeInvalidTransition, "invalid transition", nil)
	ErrRoomAlreadyBooked  = NewAppError(ErrCodeRoomAlreadyBooked, "room already booked", nil)
	ErrRoomNotAvailable   = NewAppError(ErrCodeRoomNotAvailable, "room not available", nil)
	ErrCapacityExceeded   = NewAppError(ErrCodeCapacityExceeded, "capacity exceeded", nil)
	ErrInvalidRating      = NewAppError(ErrCodeInvalidRating, "invalid rating", nil)
	ErrDuplicateRating    = NewAppError(ErrCodeDuplicateRating, "duplicate rating", nil)
	ErrConsistencyFault   = NewAppError(ErrCodeConsistencyFault, "consistency fault", nil)
	ErrLockTimeout        = NewAppError(ErrCodeLockTimeout, "lock timeout", nil)
	ErrPaymentRequired    = NewAppError(ErrCodePaymentRequired, "payment required", nil)
	ErrRoomInUse          = NewAppError(ErrCodeRoomInUse, "room in use", nil)
	ErrValidation         = NewAppError(ErrCodeValidation, "validation error", nil)
	ErrStorageUnavailable = NewAppError(ErrCodeStorageUnavailable, "storage unavailable", nil)
)
