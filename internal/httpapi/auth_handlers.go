package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentlink/talentlink/internal/auth"
)

// POST /api/v1/auth/register
func (r *Router) handleRegister(c echo.Context) error {
	var req auth.RegisterInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	result, err := r.auth.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, result, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (r *Router) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	result, err := r.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, result, "User logged in successfully")
}
