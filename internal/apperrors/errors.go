package apperrors

import (
	"errors"
	"net/http"
)

// Code identifica la categoría de un error de la API.
// Viaja en el cuerpo JSON para que los clientes nunca
// tengan que adivinar comparando el texto del mensaje.
type Code string

const (
	CodeValidation      Code = "VALIDATION"
	CodeConflict        Code = "CONFLICT"
	CodeNotFound        Code = "NOT_FOUND"
	CodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"
	CodeInternal        Code = "INTERNAL"
)

// Error es un error de la API con código y mensaje para el cliente.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode mapea el código al status HTTP correspondiente
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func PayloadTooLarge(message string) *Error {
	return &Error{Code: CodePayloadTooLarge, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// CodeOf extrae el código de un error cualquiera; los errores
// ajenos (driver, filesystem) se reportan como INTERNAL.
func CodeOf(err error) Code {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeInternal
}

// FromErr devuelve el *Error contenido, o un INTERNAL genérico
// que no filtra detalles internos al cliente.
func FromErr(err error, fallback string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(fallback)
}
