package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spidevmax/craterra/internal/model"
)

// AlbumFilter narrows and pages album listings.
type AlbumFilter struct {
	Format string
	Limit  int
	Offset int
}

// AlbumRepository defines album persistence operations.
type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	Update(ctx context.Context, album *model.Album) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Album, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f AlbumFilter) ([]model.Album, int64, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Album, error)
	List(ctx context.Context, limit, offset int) ([]model.Album, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	ExistsByIdentity(ctx context.Context, ownerID uuid.UUID, titleNorm, artistsNorm string) (bool, error)
}

type albumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository creates a new album repository.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *albumRepository) Update(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Save(album).Error
}

func (r *albumRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Album, error) {
	var album model.Album
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f AlbumFilter) ([]model.Album, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Album{}).Where("owner_id = ?", ownerID)
	if f.Format != "" {
		q = q.Where("format = ?", f.Format)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var albums []model.Album
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&albums).Error; err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

// FindAllByOwner loads the full collection without paging; used when an
// account is removed and every cover asset has to be cleaned up.
func (r *albumRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Album, error) {
	var albums []model.Album
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) List(ctx context.Context, limit, offset int) ([]model.Album, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Album{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var albums []model.Album
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&albums).Error; err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

func (r *albumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Album{}, "id = ?", id).Error
}

func (r *albumRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.Album{}).Error
}

// ExistsByIdentity is the duplicate lookup: one equality query over the
// normalized identity columns, scoped to the owner. Soft-deleted rows are
// excluded, so re-adding a removed album is allowed.
func (r *albumRepository) ExistsByIdentity(ctx context.Context, ownerID uuid.UUID, titleNorm, artistsNorm string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Album{}).
		Where("owner_id = ? AND title_norm = ? AND artists_norm = ?", ownerID, titleNorm, artistsNorm).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
