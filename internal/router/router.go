package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/spidevmax/craterra/internal/handler"
	"github.com/spidevmax/craterra/internal/middleware"
	"github.com/spidevmax/craterra/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	auth *middleware.Auth,
	authHandler *handler.AuthHandler,
	albumHandler *handler.AlbumHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid bearer token and a live principal)
	secured := e.Group("", auth.Authenticate(), auth.LoadPrincipal())

	// Album routes
	albums := secured.Group("/albums")
	albums.GET("", albumHandler.List)
	albums.POST("", albumHandler.Create)

	owned := albums.Group("/:id", auth.RequireAlbumOwnership())
	owned.GET("", albumHandler.Get)
	owned.PUT("", albumHandler.Update)
	owned.DELETE("", albumHandler.Delete)

	// Profile routes
	users := secured.Group("/users")
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateMe)
	users.PUT("/change-password", userHandler.ChangePassword)
	users.DELETE("/me", userHandler.DeleteMe)

	// Admin routes
	admin := secured.Group("/admin", auth.RequireRoles(model.RoleAdmin))
	admin.GET("/albums", adminHandler.ListAlbums)
	admin.DELETE("/albums/:id", adminHandler.DeleteAlbum)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
