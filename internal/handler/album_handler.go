package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/middleware"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/repository"
	"github.com/spidevmax/craterra/internal/response"
	"github.com/spidevmax/craterra/internal/service"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// AlbumHandler handles album collection endpoints.
type AlbumHandler struct {
	albumService service.AlbumService
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(albumService service.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

// AlbumRequest represents the editable album fields. List fields arrive
// as repeated form values in multipart requests and as arrays in JSON.
type AlbumRequest struct {
	Title            string   `json:"title" form:"title" validate:"required"`
	Artists          []string `json:"artists" form:"artists" validate:"required,min=1,dive,required"`
	Format           string   `json:"format" form:"format" validate:"omitempty,oneof=lp ep single compilation live mixtape"`
	ReleaseDate      string   `json:"release_date" form:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Labels           []string `json:"labels" form:"labels"`
	Genres           []string `json:"genres" form:"genres"`
	Tags             []string `json:"tags" form:"tags"`
	Moods            []string `json:"moods" form:"moods"`
	Sounds           []string `json:"sounds" form:"sounds"`
	Connections      []string `json:"connections" form:"connections"`
	Note             string   `json:"note" form:"note"`
	ListeningContext string   `json:"listening_context" form:"listening_context"`
}

func (r AlbumRequest) toInput() service.AlbumInput {
	return service.AlbumInput{
		Title:            r.Title,
		Artists:          r.Artists,
		Format:           r.Format,
		ReleaseDate:      r.ReleaseDate,
		Labels:           r.Labels,
		Genres:           r.Genres,
		Tags:             r.Tags,
		Moods:            r.Moods,
		Sounds:           r.Sounds,
		Connections:      r.Connections,
		Note:             r.Note,
		ListeningContext: r.ListeningContext,
	}
}

// AlbumListResponse represents a paginated album listing.
type AlbumListResponse struct {
	Albums  []model.Album `json:"albums"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// List godoc
// @Summary List the authenticated user's albums
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starts at 1"
// @Param per_page query int false "Page size, 100 maximum"
// @Param format query string false "Filter by format"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /albums [get]
func (h *AlbumHandler) List(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	page, perPage := pageParams(c)
	albums, total, err := h.albumService.ListByOwner(c.Request().Context(), principal.ID, repository.AlbumFilter{
		Format: c.QueryParam("format"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
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

// Create godoc
// @Summary Add an album to the collection
// @Tags albums
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Album title"
// @Param artists formData []string true "Artist names, repeat the field per artist"
// @Param format formData string false "lp, ep, single, compilation, live or mixtape"
// @Param release_date formData string false "Release date as YYYY-MM-DD"
// @Param cover formData file false "Cover image (jpeg, png, webp or gif)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /albums [post]
func (h *AlbumHandler) Create(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return apperrors.ErrInvalidToken
	}

	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	cover, closer, err := imageUpload(c, "cover")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	album, err := h.albumService.Create(c.Request().Context(), principal.ID, req.toInput(), cover)
	if err != nil {
		return err
	}

	return response.Created(c, "album created successfully", album)
}

// Get godoc
// @Summary Get one of the authenticated user's albums
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /albums/{id} [get]
func (h *AlbumHandler) Get(c echo.Context) error {
	album := middleware.AlbumFrom(c)
	if album == nil {
		return apperrors.ErrAlbumNotFound
	}

	return response.OK(c, "album retrieved successfully", album)
}

// Update godoc
// @Summary Update one of the authenticated user's albums
// @Tags albums
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album id"
// @Param title formData string true "Album title"
// @Param artists formData []string true "Artist names, repeat the field per artist"
// @Param cover formData file false "Replacement cover image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /albums/{id} [put]
func (h *AlbumHandler) Update(c echo.Context) error {
	album := middleware.AlbumFrom(c)
	if album == nil {
		return apperrors.ErrAlbumNotFound
	}

	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return apperrors.InvalidRequest(err.Error())
	}

	cover, closer, err := imageUpload(c, "cover")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	updated, err := h.albumService.Update(c.Request().Context(), album, req.toInput(), cover)
	if err != nil {
		return err
	}

	return response.OK(c, "album updated successfully", updated)
}

// Delete godoc
// @Summary Remove one of the authenticated user's albums
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /albums/{id} [delete]
func (h *AlbumHandler) Delete(c echo.Context) error {
	album := middleware.AlbumFrom(c)
	if album == nil {
		return apperrors.ErrAlbumNotFound
	}

	if err := h.albumService.Delete(c.Request().Context(), album); err != nil {
		return err
	}

	return response.OK(c, "album deleted successfully", nil)
}

// pageParams parses page and per_page query params with sane bounds.
func pageParams(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage
}
