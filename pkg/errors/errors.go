package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT y tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de firma del token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("el token ha expirado")
	ErrTokenIsNotAccess     = fmt.Errorf("el token no es un token de acceso")
	ErrTokenIsNotRefresh    = fmt.Errorf("el token no es un refresh token")

	// Autorización
	ErrEmptyAuthHeader    = fmt.Errorf("falta el encabezado de autorización")
	ErrInvalidAuthHeader  = fmt.Errorf("formato inválido del encabezado de autorización")
	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas")
	ErrUnauthorized       = fmt.Errorf("no autorizado")
	ErrForbidden          = fmt.Errorf("acceso denegado")

	// Contexto
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID no encontrado en el contexto de la petición")
	ErrInvalidUserID           = fmt.Errorf("UserID inválido")

	// Generales
	ErrNotFound   = fmt.Errorf("registro no encontrado")
	ErrBadRequest = fmt.Errorf("petición inválida")
	ErrConflict   = fmt.Errorf("el registro fue modificado por otro usuario")
)

// HttpError transporta el código HTTP junto al mensaje visible para el
// cliente. Err guarda la causa interna (solo para logs) y Details los datos
// extra que viajan en el body.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}

func NewUnauthorizedError(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message, ErrUnauthorized, nil)
}

func NewConflictError(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message, ErrConflict, nil)
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
