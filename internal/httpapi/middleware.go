package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// RequireAuth validates the bearer token and stores the requester's user id
// in the echo context. Requests without a valid token are rejected before any
// handler logic runs.
func (r *Router) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return failMsg(c, http.StatusUnauthorized, "Not authorized, no token")
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return failMsg(c, http.StatusUnauthorized, "Not authorized, no token")
		}

		userID, err := r.auth.Authorize(c.Request().Context(), token)
		if err != nil {
			return fail(c, err)
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

// requesterID pulls the authenticated user id set by RequireAuth.
func requesterID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
