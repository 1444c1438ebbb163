package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

type DocumentService struct {
	db    *gorm.DB
	store *storage.ObjectStore
}

func NewDocumentService(db *gorm.DB, store *storage.ObjectStore) *DocumentService {
	return &DocumentService{db: db, store: store}
}

// Upload streams a file to object storage and records it. The object key
// namespaces by household so keys never collide across accounts.
func (s *DocumentService) Upload(ctx context.Context, householdID, userID uuid.UUID, title, category, filename, contentType string, size int64, body io.Reader) (*models.Document, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	docID := uuid.New()
	key := fmt.Sprintf("documents/%s/%s%s", householdID, docID, filepath.Ext(filename))

	if err := s.store.Put(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:          docID,
		HouseholdID: householdID,
		UserID:      userID,
		Title:       title,
		Category:    category,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		// Best effort: don't leave an orphaned object behind.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Error("failed to remove orphaned object after create failure", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) List(householdID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Scopes(household.ForHousehold(householdID)).Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DownloadURL returns a presigned URL for a household's document.
func (s *DocumentService) DownloadURL(ctx context.Context, householdID, docID uuid.UUID) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	var doc models.Document
	err := s.db.Scopes(household.ForHousehold(householdID)).First(&doc, "id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrDocumentNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load document %s: %w", docID, err)
	}
	return s.store.PresignGet(ctx, doc.StorageKey)
}

func (s *DocumentService) Delete(ctx context.Context, householdID, docID uuid.UUID) error {
	var doc models.Document
	err := s.db.Scopes(household.ForHousehold(householdID)).First(&doc, "id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", docID, err)
	}

	if err := s.db.Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document %s: %w", docID, err)
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
			slog.Error("failed to delete object for removed document", "key", doc.StorageKey, "error", err)
		}
	}
	return nil
}
