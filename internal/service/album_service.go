package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spidevmax/craterra/internal/assets"
	"github.com/spidevmax/craterra/internal/cache"
	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/repository"
)

const (
	albumCacheTTL = 5 * time.Minute
	coverFolder   = "covers"
)

// Upload is an in-flight file received from a multipart request, already
// sniffed and rewound by the handler.
type Upload struct {
	ContentType string
	Reader      io.Reader
}

// AlbumInput carries the editable album fields.
type AlbumInput struct {
	Title            string
	Artists          []string
	Format           string
	ReleaseDate      string
	Labels           []string
	Genres           []string
	Tags             []string
	Moods            []string
	Sounds           []string
	Connections      []string
	Note             string
	ListeningContext string
}

// AlbumService handles album operations.
type AlbumService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in AlbumInput, cover *Upload) (*model.Album, error)
	Update(ctx context.Context, album *model.Album, in AlbumInput, cover *Upload) (*model.Album, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f repository.AlbumFilter) ([]model.Album, int64, error)
	List(ctx context.Context, limit, offset int) ([]model.Album, int64, error)
	Delete(ctx context.Context, album *model.Album) error
	IsDuplicate(ctx context.Context, ownerID uuid.UUID, title string, artists []string) (bool, error)
}

type albumService struct {
	repo     repository.AlbumRepository
	assets   assets.Store
	cache    *cache.Client
	identity *AlbumIdentity
}

// NewAlbumService creates a new album service.
func NewAlbumService(repo repository.AlbumRepository, store assets.Store, cacheClient *cache.Client) AlbumService {
	return &albumService{
		repo:     repo,
		assets:   store,
		cache:    cacheClient,
		identity: NewAlbumIdentity(),
	}
}

func albumCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("album:%s", id)
}

// IsDuplicate reports whether an equivalent album already exists for the
// owner. Equivalence is normalized title equality plus artist multiset
// equality; the check is a single lookup over the stored identity columns.
func (s *albumService) IsDuplicate(ctx context.Context, ownerID uuid.UUID, title string, artists []string) (bool, error) {
	return s.repo.ExistsByIdentity(ctx, ownerID, s.identity.NormalizeTitle(title), s.identity.ArtistsKey(artists))
}

// Create catalogs a new album for the owner. The duplicate check runs before
// the insert; there is no storage-level uniqueness, so two concurrent
// identical creations can both succeed.
func (s *albumService) Create(ctx context.Context, ownerID uuid.UUID, in AlbumInput, cover *Upload) (*model.Album, error) {
	dup, err := s.IsDuplicate(ctx, ownerID, in.Title, in.Artists)
	if err != nil {
		return nil, fmt.Errorf("check album identity: %w", err)
	}
	if dup {
		return nil, apperrors.ErrDuplicateAlbum
	}

	album := &model.Album{
		ID:      uuid.New(),
		OwnerID: ownerID,
	}
	s.apply(album, in)

	if cover != nil {
		asset, err := s.assets.Upload(ctx, coverFolder, cover.ContentType, cover.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		album.CoverURL = asset.URL
		album.CoverAssetID = asset.Key
	}

	if err := s.repo.Create(ctx, album); err != nil {
		// The record never landed; drop the orphaned cover if one was uploaded.
		deleteAssetQuietly(ctx, s.assets, album.CoverAssetID)
		return nil, fmt.Errorf("create album: %w", err)
	}

	return album, nil
}

// Update replaces the editable fields of an already ownership-checked album.
// A new cover is uploaded before the save; the previous asset is removed
// best-effort only after the save sticks.
func (s *albumService) Update(ctx context.Context, album *model.Album, in AlbumInput, cover *Upload) (*model.Album, error) {
	oldAssetID := album.CoverAssetID

	s.apply(album, in)

	if cover != nil {
		asset, err := s.assets.Upload(ctx, coverFolder, cover.ContentType, cover.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		album.CoverURL = asset.URL
		album.CoverAssetID = asset.Key
	}

	if err := s.repo.Update(ctx, album); err != nil {
		if cover != nil {
			deleteAssetQuietly(ctx, s.assets, album.CoverAssetID)
		}
		return nil, fmt.Errorf("update album: %w", err)
	}

	if cover != nil && oldAssetID != "" && oldAssetID != album.CoverAssetID {
		deleteAssetQuietly(ctx, s.assets, oldAssetID)
	}

	s.cache.Delete(ctx, albumCacheKey(album.ID))
	return album, nil
}

// GetByID retrieves an album with caching.
func (s *albumService) GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error) {
	var cached model.Album
	if s.cache.GetJSON(ctx, albumCacheKey(id), &cached) {
		return &cached, nil
	}

	album, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	s.cache.SetJSON(ctx, albumCacheKey(id), album, albumCacheTTL)
	return album, nil
}

func (s *albumService) ListByOwner(ctx context.Context, ownerID uuid.UUID, f repository.AlbumFilter) ([]model.Album, int64, error) {
	return s.repo.ListByOwner(ctx, ownerID, f)
}

func (s *albumService) List(ctx context.Context, limit, offset int) ([]model.Album, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// Delete removes an album record, then its cover asset best-effort.
func (s *albumService) Delete(ctx context.Context, album *model.Album) error {
	if err := s.repo.Delete(ctx, album.ID); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	deleteAssetQuietly(ctx, s.assets, album.CoverAssetID)
	s.cache.Delete(ctx, albumCacheKey(album.ID))
	return nil
}

// apply copies the editable fields and refreshes the identity columns.
// Owner, id, and timestamps are never touched here.
func (s *albumService) apply(album *model.Album, in AlbumInput) {
	album.Title = in.Title
	album.TitleNorm = s.identity.NormalizeTitle(in.Title)
	album.Artists = in.Artists
	album.ArtistsNorm = s.identity.ArtistsKey(in.Artists)
	album.Format = in.Format
	album.ReleaseDate = in.ReleaseDate
	album.Labels = in.Labels
	album.Genres = in.Genres
	album.Tags = in.Tags
	album.Moods = in.Moods
	album.Sounds = in.Sounds
	album.Connections = in.Connections
	album.Note = in.Note
	album.ListeningContext = in.ListeningContext
}

// deleteAssetQuietly removes an uploaded object best-effort. Cleanup failures
// are logged and never escalate; they must not mask the primary outcome.
func deleteAssetQuietly(ctx context.Context, store assets.Store, key string) {
	if key == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Printf("asset cleanup failed for %s: %v", key, err)
	}
}
