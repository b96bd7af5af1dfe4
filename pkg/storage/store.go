package storage

import (
	"errors"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"oddscap/models"
)

// BatchStore persists capture batches in Postgres via gorm. One unsent (OPEN
// or PROCESSED) batch exists per session key; LoadOpen returns the newest.
type BatchStore struct {
	db *gorm.DB
}

func NewBatchStore(db *gorm.DB) *BatchStore {
	return &BatchStore{db: db}
}

func (s *BatchStore) LoadOpen(sessionKey int64) (*models.CaptureBatch, error) {
	var batch models.CaptureBatch
	err := s.db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("capture_images.id ASC") }).
		Where("session_key = ? AND state IN ?", sessionKey,
			[]models.BatchState{models.BatchOpen, models.BatchProcessed}).
		Order("created_at DESC").
		First(&batch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *BatchStore) Save(batch *models.CaptureBatch) error {
	return s.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(batch).Error
}

func (s *BatchStore) Delete(batchID string) error {
	if err := s.db.Where("batch_id = ?", batchID).Delete(&models.CaptureImage{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.CaptureBatch{}, "id = ?", batchID).Error
}

// DiskBlobStore keeps image blobs as flat files under a base directory.
type DiskBlobStore struct {
	base string
}

func NewDiskBlobStore(base string) *DiskBlobStore {
	return &DiskBlobStore{base: base}
}

func (s *DiskBlobStore) Save(key string, data []byte) error {
	return os.WriteFile(filepath.Join(s.base, key), data, 0644)
}

func (s *DiskBlobStore) Fetch(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.base, key))
}

func (s *DiskBlobStore) Remove(key string) error {
	return os.Remove(filepath.Join(s.base, key))
}
