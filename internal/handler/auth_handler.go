package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/spidevmax/craterra/internal/assets"
	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/response"
	"github.com/spidevmax/craterra/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful login payload.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param name formData string true "Display name"
// @Param email formData string true "Email address"
// @Param password formData string true "Password, 8 characters minimum"
// @Param avatar formData file false "Avatar image (jpeg, png, webp or gif)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	avatar, closer, err := imageUpload(c, "avatar")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, avatar)
	if err != nil {
		return err
	}

	return response.Created(c, "user registered successfully", user)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, "login successful", AuthResponse{Token: token, User: user})
}

// imageUpload opens an optional uploaded image field and sniffs its real
// content type. A missing field is not an error.
func imageUpload(c echo.Context, field string) (*service.Upload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, apperrors.InvalidRequest("could not read uploaded file")
	}

	contentType, err := assets.SniffImage(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return &service.Upload{ContentType: contentType, Reader: file}, file, nil
}
