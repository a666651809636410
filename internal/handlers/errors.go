package handlers

import (
	"errors"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

// handleServiceError maps the service sentinel errors onto the shared error
// envelope. Anything unrecognized is a server error.
func handleServiceError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return common.SendClientError(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrConflict):
		return common.SendConflictError(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		return common.SendStateError(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return common.SendUnauthorizedError(c)
	default:
		// Unexpected failures are logged server-side and masked for the client.
		c.Logger().Error(err)
		return common.SendServerError(c, "Internal error")
	}
}
