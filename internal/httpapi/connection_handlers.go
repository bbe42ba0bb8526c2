package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET /api/v1/connections
func (r *Router) handleListConnections(c echo.Context) error {
	users, err := r.connections.ListConnections(c.Request().Context(), requesterID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users, "Connections list fetched")
}

// GET /api/v1/connections/pending
func (r *Router) handleListPending(c echo.Context) error {
	users, err := r.connections.ListPending(c.Request().Context(), requesterID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users, "Pending requests fetched")
}

// POST /api/v1/connections/send/:id
func (r *Router) handleSendRequest(c echo.Context) error {
	if err := r.connections.Send(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Connection request sent")
}

// POST /api/v1/connections/accept/:id
func (r *Router) handleAcceptRequest(c echo.Context) error {
	if err := r.connections.Accept(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Connection accepted")
}

// POST /api/v1/connections/reject/:id
func (r *Router) handleRejectRequest(c echo.Context) error {
	if err := r.connections.Reject(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Connection request rejected")
}

// DELETE /api/v1/connections/remove/:id
func (r *Router) handleRemoveConnection(c echo.Context) error {
	if err := r.connections.Remove(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Connection removed")
}
