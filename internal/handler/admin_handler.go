package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/response"
	"github.com/spidevmax/craterra/internal/service"
)

// AdminHandler handles moderation endpoints, reachable by admins only.
type AdminHandler struct {
	albumService service.AlbumService
	userService  service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(albumService service.AlbumService, userService service.UserService) *AdminHandler {
	return &AdminHandler{albumService: albumService, userService: userService}
}

// UserListResponse represents a paginated user listing.
type UserListResponse struct {
	Users   []model.User `json:"users"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

// ListAlbums godoc
// @Summary List every album across all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starts at 1"
// @Param per_page query int false "Page size, 100 maximum"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/albums [get]
func (h *AdminHandler) ListAlbums(c echo.Context) error {
	page, perPage := pageParams(c)
	albums, total, err := h.albumService.List(c.Request().Context(), perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	return response.OK(c, "albums retrieved successfully", AlbumListResponse{
		Albums:  albums,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// ListUsers godoc
// @Summary List every registered user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starts at 1"
// @Param per_page query int false "Page size, 100 maximum"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, perPage := pageParams(c)
	users, total, err := h.userService.List(c.Request().Context(), perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	return response.OK(c, "users retrieved successfully", UserListResponse{
		Users:   users,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// DeleteAlbum godoc
// @Summary Delete any user's album
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/albums/{id} [delete]
func (h *AdminHandler) DeleteAlbum(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrAlbumNotFound
	}

	album, err := h.albumService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := h.albumService.Delete(c.Request().Context(), album); err != nil {
		return err
	}

	return response.OK(c, "album deleted successfully", nil)
}

// DeleteUser godoc
// @Summary Delete any user account and all its albums
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), user); err != nil {
		return err
	}

	return response.OK(c, "user deleted successfully", nil)
}
