package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Album represents a cataloged release in a user's collection.
//
// TitleNorm and ArtistsNorm are the normalized identity fields used for the
// per-owner duplicate lookup. They are maintained by the service layer and
// never exposed. The identity index is intentionally non-unique: two
// concurrent creations of the same album can both land.
type Album struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:char(36);not null;index:idx_album_identity,priority:1"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	TitleNorm string    `json:"-" gorm:"size:255;not null;index:idx_album_identity,priority:2"`
	// Artists keeps the credited order for display; ArtistsNorm is the
	// order-insensitive multiset key.
	Artists     []string `json:"artists" gorm:"serializer:json;type:json"`
	ArtistsNorm string   `json:"-" gorm:"size:500;not null"`
	Format      string   `json:"format,omitempty" gorm:"size:32"`
	ReleaseDate string   `json:"release_date,omitempty" gorm:"size:10"`

	CoverURL     string `json:"cover_url,omitempty" gorm:"size:512"`
	CoverAssetID string `json:"-" gorm:"size:255"`

	// Free-form classification; no invariants attach to any of these.
	Labels []string `json:"labels,omitempty" gorm:"serializer:json;type:json"`
	Genres []string `json:"genres,omitempty" gorm:"serializer:json;type:json"`
	Tags   []string `json:"tags,omitempty" gorm:"serializer:json;type:json"`
	Moods  []string `json:"moods,omitempty" gorm:"serializer:json;type:json"`
	Sounds []string `json:"sounds,omitempty" gorm:"serializer:json;type:json"`
	// Connections are free-form references to other albums; they are not
	// validated against existing records.
	Connections      []string `json:"connections,omitempty" gorm:"serializer:json;type:json"`
	Note             string   `json:"note,omitempty" gorm:"type:text"`
	ListeningContext string   `json:"listening_context,omitempty" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
