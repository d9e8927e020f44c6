package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError carries an HTTP status through the service layer so the error
// middleware can answer with the right code.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

func NotFound(message string) *ApiError {
	return &ApiError{Status: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *ApiError {
	return &ApiError{Status: fiber.StatusConflict, Message: message}
}

func BadRequest(message string) *ApiError {
	return &ApiError{Status: fiber.StatusBadRequest, Message: message}
}

func UpstreamFailure(message string) *ApiError {
	return &ApiError{Status: fiber.StatusBadGateway, Message: message}
}
