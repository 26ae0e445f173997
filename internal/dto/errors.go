package dto

// BaseError — универсальный корневой формат ошибки.
// Code — машинно-ориентированный код (snake_case),
// Message — человеко-читаемое описание,
// Details — дополнительная строка,
// Fields — для валидационных ошибок.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func NewValidationError(msg string, fields []FieldError) BaseError {
	return BaseError{Code: "validation_error", Message: msg, Fields: fields}
}

func NewInsufficientStockError(msg string) BaseError {
	return BaseError{Code: "insufficient_stock", Message: msg}
}

func NewInvalidTransitionError(msg string) BaseError {
	return BaseError{Code: "invalid_transition", Message: msg}
}

func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Message: msg}
}

func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Message: msg}
}

func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Message: msg}
}

func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Message: msg}
}

func NewRateLimitedError(msg string) BaseError {
	return BaseError{Code: "rate_limited", Message: msg}
}

func NewInternalError(details string) BaseError {
	return BaseError{Code: "internal_error", Message: "internal server error", Details: details}
}
