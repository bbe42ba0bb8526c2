package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentlink/talentlink/internal/profile"
)

// GET /api/v1/users/me
func (r *Router) handleGetOwnProfile(c echo.Context) error {
	user, err := r.profiles.GetOwn(c.Request().Context(), requesterID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user, "User profile fetched successfully")
}

// GET /api/v1/users/:id
func (r *Router) handleGetProfile(c echo.Context) error {
	user, err := r.profiles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user, "User profile fetched successfully")
}

// PUT /api/v1/users/me
func (r *Router) handleUpdateProfile(c echo.Context) error {
	var req profile.UpdateInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	user, err := r.profiles.Update(c.Request().Context(), requesterID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user, "Profile updated successfully")
}

// GET /api/v1/users/search?q=
func (r *Router) handleSearchUsers(c echo.Context) error {
	users, err := r.profiles.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users, "Search results")
}

// POST /api/v1/users/experience
func (r *Router) handleAddExperience(c echo.Context) error {
	var req profile.ExperienceInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	entries, err := r.profiles.AddExperience(c.Request().Context(), requesterID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, entries, "Experience added successfully")
}

// PUT /api/v1/users/experience/:id
func (r *Router) handleUpdateExperience(c echo.Context) error {
	var req profile.ExperienceInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	entries, err := r.profiles.UpdateExperience(c.Request().Context(), requesterID(c), c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, entries, "Experience updated")
}

// DELETE /api/v1/users/experience/:id
func (r *Router) handleDeleteExperience(c echo.Context) error {
	if err := r.profiles.DeleteExperience(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Experience removed")
}

// POST /api/v1/users/education
func (r *Router) handleAddEducation(c echo.Context) error {
	var req profile.EducationInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	entries, err := r.profiles.AddEducation(c.Request().Context(), requesterID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, entries, "Education added successfully")
}

// PUT /api/v1/users/education/:id
func (r *Router) handleUpdateEducation(c echo.Context) error {
	var req profile.EducationInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	entries, err := r.profiles.UpdateEducation(c.Request().Context(), requesterID(c), c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, entries, "Education updated")
}

// DELETE /api/v1/users/education/:id
func (r *Router) handleDeleteEducation(c echo.Context) error {
	if err := r.profiles.DeleteEducation(c.Request().Context(), requesterID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Education removed")
}
