// Package httpapi wires the services to the echo transport: routing, bearer
// auth, the JSON envelope and domain-error translation.
package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/talentlink/talentlink/internal/auth"
	"github.com/talentlink/talentlink/internal/connection"
	"github.com/talentlink/talentlink/internal/post"
	"github.com/talentlink/talentlink/internal/profile"
)

// authRateLimit caps register/login attempts per client IP per second.
const authRateLimit = 20

// Router holds the services behind the HTTP surface.
type Router struct {
	auth        auth.Service
	profiles    profile.Service
	connections connection.Service
	posts       post.Service
	dbHealth    func(context.Context) error
}

// New assembles a Router. dbHealth may be nil when no database readiness
// probe applies.
func New(authSvc auth.Service, profileSvc profile.Service, connSvc connection.Service, postSvc post.Service, dbHealth func(context.Context) error) *Router {
	return &Router{
		auth:        authSvc,
		profiles:    profileSvc,
		connections: connSvc,
		posts:       postSvc,
		dbHealth:    dbHealth,
	}
}

// Register mounts every route on the echo instance.
func (r *Router) Register(e *echo.Echo) {
	e.GET("/health", r.handleHealth)
	e.GET("/ready", r.handleReady)

	api := e.Group("/api/v1")

	// Register and login are rate limited per IP to slow credential abuse.
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(authRateLimit)))
	authGroup.POST("/register", r.handleRegister)
	authGroup.POST("/login", r.handleLogin)

	users := api.Group("/users", r.RequireAuth)
	users.GET("/me", r.handleGetOwnProfile)
	users.PUT("/me", r.handleUpdateProfile)
	users.GET("/search", r.handleSearchUsers)
	users.POST("/experience", r.handleAddExperience)
	users.PUT("/experience/:id", r.handleUpdateExperience)
	users.DELETE("/experience/:id", r.handleDeleteExperience)
	users.POST("/education", r.handleAddEducation)
	users.PUT("/education/:id", r.handleUpdateEducation)
	users.DELETE("/education/:id", r.handleDeleteEducation)
	users.GET("/:id", r.handleGetProfile)

	posts := api.Group("/posts", r.RequireAuth)
	posts.POST("", r.handleCreatePost)
	posts.GET("/feed", r.handleFeed)
	posts.GET("/user/:id", r.handlePostsByUser)
	posts.PUT("/:id", r.handleUpdatePost)
	posts.DELETE("/:id", r.handleDeletePost)
	posts.POST("/:id/like", r.handleLikePost)
	posts.POST("/:id/comments", r.handleAddComment)
	posts.GET("/:id/comments", r.handleComments)
	posts.DELETE("/:id/comments/:cid", r.handleDeleteComment)

	conns := api.Group("/connections", r.RequireAuth)
	conns.GET("", r.handleListConnections)
	conns.GET("/pending", r.handleListPending)
	conns.POST("/send/:id", r.handleSendRequest)
	conns.POST("/accept/:id", r.handleAcceptRequest)
	conns.POST("/reject/:id", r.handleRejectRequest)
	conns.DELETE("/remove/:id", r.handleRemoveConnection)
}

func (r *Router) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "Server is healthy"})
}

func (r *Router) handleReady(c echo.Context) error {
	if r.dbHealth != nil {
		if err := r.dbHealth(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
