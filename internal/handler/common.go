package handler

import (
	"github.com/labstack/echo/v4"

	"foundation/internal/errors"
)

// DataResponse is the success envelope for JSON endpoints.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, DataResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, DataResponse{Success: true, Message: message})
}

// respondError translates a domain error into the JSON error envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(c echo.Context, message string) error {
	return respondError(c, errors.NewValidation(message))
}
