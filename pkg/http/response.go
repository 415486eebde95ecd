package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail is the failure body shape shared by every endpoint.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// SuccessResponse writes a 200 response with the given body.
func SuccessResponse(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// DetailResponse writes an error response as {"detail": message}.
func DetailResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorDetail{Detail: message})
}

// AppErrorResponse writes an application error response, falling back to a
// generic 500 for errors that carry no HTTP status.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return DetailResponse(c, appErr.Status, appErr.Message)
	}
	return DetailResponse(c, http.StatusInternalServerError, "internal server error")
}
