package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/spidevmax/craterra/internal/assets"
	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
)

func TestAlbumService_IsDuplicate(t *testing.T) {
	ownerID := uuid.New()
	mockRepo := new(MockAlbumRepository)

	// The lookup must receive normalized identity values: lowercased,
	// trimmed, whitespace collapsed, artists sorted into a multiset key.
	mockRepo.On("ExistsByIdentity", mock.Anything, ownerID, "the dark side", "david gilmour|roger waters").
		Return(true, nil)

	svc := NewAlbumService(mockRepo, new(MockAssetStore), nil)
	dup, err := svc.IsDuplicate(context.Background(), ownerID, "  The  Dark Side ", []string{"ROGER  Waters", "David Gilmour"})

	assert.NoError(t, err)
	assert.True(t, dup)
	mockRepo.AssertExpectations(t)
}

func TestAlbumService_Create(t *testing.T) {
	ownerID := uuid.New()
	cover := &Upload{ContentType: "image/png", Reader: strings.NewReader("png-bytes")}

	tests := []struct {
		name          string
		input         AlbumInput
		cover         *Upload
		setupMocks    func(*MockAlbumRepository, *MockAssetStore)
		expectedError error
	}{
		{
			name:  "creates when no equivalent exists",
			input: AlbumInput{Title: "Thriller", Artists: []string{"Michael Jackson"}, Format: "lp"},
			setupMocks: func(mRepo *MockAlbumRepository, mStore *MockAssetStore) {
				mRepo.On("ExistsByIdentity", mock.Anything, ownerID, "thriller", "michael jackson").Return(false, nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Album")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "normalized variant counts as duplicate",
			input: AlbumInput{Title: "  THRILLER ", Artists: []string{"michael   jackson"}},
			setupMocks: func(mRepo *MockAlbumRepository, mStore *MockAssetStore) {
				mRepo.On("ExistsByIdentity", mock.Anything, ownerID, "thriller", "michael jackson").Return(true, nil)
			},
			expectedError: apperrors.ErrDuplicateAlbum,
		},
		{
			name:  "uploads cover before insert",
			input: AlbumInput{Title: "Homework", Artists: []string{"Daft Punk"}},
			cover: cover,
			setupMocks: func(mRepo *MockAlbumRepository, mStore *MockAssetStore) {
				mRepo.On("ExistsByIdentity", mock.Anything, ownerID, "homework", "daft punk").Return(false, nil)
				mStore.On("Upload", mock.Anything, "covers", "image/png", mock.Anything).
					Return(assets.Asset{Key: "covers/k", URL: "https://assets.test/covers/k"}, nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Album")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "drops the orphaned cover when insert fails",
			input: AlbumInput{Title: "Homework", Artists: []string{"Daft Punk"}},
			cover: cover,
			setupMocks: func(mRepo *MockAlbumRepository, mStore *MockAssetStore) {
				mRepo.On("ExistsByIdentity", mock.Anything, ownerID, "homework", "daft punk").Return(false, nil)
				mStore.On("Upload", mock.Anything, "covers", "image/png", mock.Anything).
					Return(assets.Asset{Key: "covers/k", URL: "https://assets.test/covers/k"}, nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Album")).Return(errors.New("insert failed"))
				mStore.On("Delete", mock.Anything, "covers/k").Return(nil)
			},
			expectedError: errors.New("insert failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAlbumRepository)
			mockStore := new(MockAssetStore)
			tt.setupMocks(mockRepo, mockStore)

			svc := NewAlbumService(mockRepo, mockStore, nil)
			album, err := svc.Create(context.Background(), ownerID, tt.input, tt.cover)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, album)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, album)
				assert.Equal(t, ownerID, album.OwnerID)
				assert.Equal(t, tt.input.Title, album.Title)
				assert.NotEmpty(t, album.TitleNorm)
				if tt.cover != nil {
					assert.Equal(t, "covers/k", album.CoverAssetID)
					assert.Equal(t, "https://assets.test/covers/k", album.CoverURL)
				}
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAlbumService_Create_DuplicateKeepsStoreUntouched(t *testing.T) {
	ownerID := uuid.New()
	mockRepo := new(MockAlbumRepository)
	mockStore := new(MockAssetStore)
	mockRepo.On("ExistsByIdentity", mock.Anything, ownerID, "thriller", "michael jackson").Return(true, nil)

	svc := NewAlbumService(mockRepo, mockStore, nil)
	_, err := svc.Create(context.Background(), ownerID, AlbumInput{Title: "Thriller", Artists: []string{"Michael Jackson"}},
		&Upload{ContentType: "image/png", Reader: strings.NewReader("png-bytes")})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateAlbum)
	mockStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAlbumService_Update(t *testing.T) {
	ownerID := uuid.New()

	t.Run("refreshes identity columns", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockStore := new(MockAssetStore)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Album")).Return(nil)

		album := &model.Album{ID: uuid.New(), OwnerID: ownerID, Title: "Old", TitleNorm: "old", ArtistsNorm: "someone"}
		svc := NewAlbumService(mockRepo, mockStore, nil)

		updated, err := svc.Update(context.Background(), album, AlbumInput{
			Title:   "New  Title",
			Artists: []string{"B Artist", "A Artist"},
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "new title", updated.TitleNorm)
		assert.Equal(t, "a artist|b artist", updated.ArtistsNorm)
		mockRepo.AssertExpectations(t)
	})

	t.Run("swaps cover and deletes the old asset", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockStore := new(MockAssetStore)
		mockStore.On("Upload", mock.Anything, "covers", "image/jpeg", mock.Anything).
			Return(assets.Asset{Key: "covers/new", URL: "https://assets.test/covers/new"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Album")).Return(nil)
		mockStore.On("Delete", mock.Anything, "covers/old").Return(nil)

		album := &model.Album{ID: uuid.New(), OwnerID: ownerID, Title: "Kid A", CoverAssetID: "covers/old"}
		svc := NewAlbumService(mockRepo, mockStore, nil)

		updated, err := svc.Update(context.Background(), album, AlbumInput{Title: "Kid A", Artists: []string{"Radiohead"}},
			&Upload{ContentType: "image/jpeg", Reader: strings.NewReader("jpeg-bytes")})

		assert.NoError(t, err)
		assert.Equal(t, "covers/new", updated.CoverAssetID)
		assert.Equal(t, "https://assets.test/covers/new", updated.CoverURL)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("cleans up the new cover when save fails", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockStore := new(MockAssetStore)
		mockStore.On("Upload", mock.Anything, "covers", "image/jpeg", mock.Anything).
			Return(assets.Asset{Key: "covers/new", URL: "https://assets.test/covers/new"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Album")).Return(errors.New("save failed"))
		mockStore.On("Delete", mock.Anything, "covers/new").Return(nil)

		album := &model.Album{ID: uuid.New(), OwnerID: ownerID, Title: "Kid A", CoverAssetID: "covers/old"}
		svc := NewAlbumService(mockRepo, mockStore, nil)

		_, err := svc.Update(context.Background(), album, AlbumInput{Title: "Kid A", Artists: []string{"Radiohead"}},
			&Upload{ContentType: "image/jpeg", Reader: strings.NewReader("jpeg-bytes")})

		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, "covers/old")
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})
}

func TestAlbumService_GetByID(t *testing.T) {
	id := uuid.New()

	t.Run("returns stored album", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Album{ID: id, Title: "Vespertine"}, nil)

		svc := NewAlbumService(mockRepo, new(MockAssetStore), nil)
		album, err := svc.GetByID(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, "Vespertine", album.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing record maps to domain error", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAlbumService(mockRepo, new(MockAssetStore), nil)
		_, err := svc.GetByID(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrAlbumNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestAlbumService_Delete(t *testing.T) {
	album := &model.Album{ID: uuid.New(), OwnerID: uuid.New(), CoverAssetID: "covers/k"}

	t.Run("removes record then cover", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockStore := new(MockAssetStore)
		mockRepo.On("Delete", mock.Anything, album.ID).Return(nil)
		mockStore.On("Delete", mock.Anything, "covers/k").Return(nil)

		svc := NewAlbumService(mockRepo, mockStore, nil)
		err := svc.Delete(context.Background(), album)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("keeps the asset when the record delete fails", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockStore := new(MockAssetStore)
		mockRepo.On("Delete", mock.Anything, album.ID).Return(errors.New("delete failed"))

		svc := NewAlbumService(mockRepo, mockStore, nil)
		err := svc.Delete(context.Background(), album)

		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}
