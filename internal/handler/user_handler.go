package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/middleware"
	"github.com/spidevmax/craterra/internal/response"
	"github.com/spidevmax/craterra/internal/service"
)

// UserHandler handles the authenticated user's profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update. Role and password
// are bound as pointers so their mere presence can be rejected, they
// change through other flows only.
type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	return response.OK(c, "profile retrieved successfully", principal)
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if req.Role != nil || req.Password != nil {
		return apperrors.ErrRestrictedField
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), principal, service.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "profile updated successfully", updated)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	err := h.userService.ChangePassword(c.Request().Context(), principal, req.CurrentPassword, req.NewPassword, req.NewPasswordConfirmation)
	if err != nil {
		return err
	}

	return response.OK(c, "password changed successfully", nil)
}

// DeleteMe godoc
// @Summary Delete the authenticated user's account and all its albums
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), principal); err != nil {
		return err
	}

	return response.OK(c, "account deleted successfully", nil)
}
