package httpapi

import (
	"github.com/labstack/echo/v4"

	"github.com/talentlink/talentlink/internal/apperr"
)

// envelope is the uniform response body for successful operations.
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// failure is the uniform response body for failed operations.
type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respond writes the success envelope.
func respond(c echo.Context, status int, data any, message string) error {
	if data == nil {
		data = map[string]any{}
	}
	return c.JSON(status, envelope{Success: true, StatusCode: status, Message: message, Data: data})
}

// fail translates a domain error into its HTTP status and failure envelope.
// This is the single boundary at which error kinds become status codes.
func fail(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		c.Logger().Error(err)
	}
	return c.JSON(kind.Status(), failure{Success: false, Message: apperr.MessageOf(err)})
}

// failMsg writes a failure envelope with an explicit status and message.
func failMsg(c echo.Context, status int, message string) error {
	return c.JSON(status, failure{Success: false, Message: message})
}
