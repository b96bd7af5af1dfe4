package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"oddscap/models"
	"oddscap/pkg/ocr"
	"oddscap/pkg/odds"
)

// Store is the batch durability contract. LoadOpen returns the session's
// single unsent batch (state OPEN or PROCESSED) or nil when there is none.
type Store interface {
	LoadOpen(sessionKey int64) (*models.CaptureBatch, error)
	Save(batch *models.CaptureBatch) error
	Delete(batchID string) error
}

// BlobStore resolves image blobs by the storage key recorded on the
// CaptureImage row.
type BlobStore interface {
	Save(key string, data []byte) error
	Fetch(key string) ([]byte, error)
	Remove(key string) error
}

// Service owns the capture-batch lifecycle: open, accumulate screenshots,
// process into a consolidated odds record, mark sent. Batches of different
// sessions are independent; the caller serializes operations within one
// session.
type Service struct {
	store      Store
	blobs      BlobStore
	recognizer ocr.Recognizer
}

func NewService(store Store, blobs BlobStore, recognizer ocr.Recognizer) *Service {
	return &Service{store: store, blobs: blobs, recognizer: recognizer}
}

// Start opens a new batch for the session, discarding any unsent predecessor
// together with its image blobs.
func (s *Service) Start(sessionKey int64, info models.MatchInfo) (*models.CaptureBatch, error) {
	prev, err := s.store.LoadOpen(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if prev != nil {
		if err := s.discard(prev); err != nil {
			return nil, fmt.Errorf("discard previous batch: %w", err)
		}
	}
	batch := &models.CaptureBatch{
		ID:         uuid.NewString(),
		SessionKey: sessionKey,
		HomeTeam:   info.HomeTeam,
		AwayTeam:   info.AwayTeam,
		League:     info.League,
		MatchDate:  info.MatchDate,
		State:      models.BatchOpen,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Save(batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	logrus.WithFields(logrus.Fields{"batch": batch.ID, "session": sessionKey, "match": info.Title()}).
		Info("capture batch started")
	return batch, nil
}

// Current returns the session's unsent batch, or nil when none exists.
func (s *Service) Current(sessionKey int64) (*models.CaptureBatch, error) {
	return s.store.LoadOpen(sessionKey)
}

// AddImage stores the screenshot bytes with the blob collaborator and appends
// an image reference to the session's batch. Late additions to an already
// processed batch are allowed; re-running Process folds them in.
func (s *Service) AddImage(sessionKey int64, fileID string, data []byte) (*models.CaptureBatch, error) {
	batch, err := s.store.LoadOpen(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if batch == nil {
		return nil, ErrNoBatch
	}
	if err := CheckAppendable(batch); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("batch_%s_%s_%d.jpg", batch.ID, fileID, time.Now().UnixNano())
	if err := s.blobs.Save(key, data); err != nil {
		return nil, fmt.Errorf("store image blob: %w", err)
	}
	batch.Images = append(batch.Images, models.CaptureImage{
		BatchID:    batch.ID,
		FileID:     fileID,
		StoreKey:   key,
		UploadedAt: time.Now().UTC(),
	})
	if err := s.store.Save(batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return batch, nil
}

// CheckAppendable enforces the image-append transition rules: sent batches
// are immutable and capacity is bounded.
func CheckAppendable(batch *models.CaptureBatch) error {
	if batch.State == models.BatchSent {
		return ErrBatchSent
	}
	if len(batch.Images) >= Capacity {
		return ErrCapacityExceeded
	}
	return nil
}

// Process runs recognition and parsing over every image in arrival order,
// merges the per-image records first-write-wins, and stores the consolidated
// result, moving the batch to PROCESSED. Re-processing an already PROCESSED
// batch recomputes from scratch. Cancellation mid-pass commits nothing.
func (s *Service) Process(ctx context.Context, sessionKey int64) (*models.CaptureBatch, error) {
	batch, err := s.store.LoadOpen(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if batch == nil {
		return nil, ErrNoBatch
	}
	if len(batch.Images) == 0 {
		return nil, ErrNoImages
	}

	records := make([]odds.Record, 0, len(batch.Images))
	for i := range batch.Images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img := &batch.Images[i]
		var frags []ocr.Fragment
		data, err := s.blobs.Fetch(img.StoreKey)
		if err != nil {
			logrus.WithError(err).WithField("store_key", img.StoreKey).
				Warn("image blob unavailable, skipping recognition")
			frags = ocr.PlaceholderFragments()
		} else {
			frags = ocr.RecognizeOrPlaceholder(ctx, s.recognizer, data)
		}
		rec := odds.ParseText(ocr.JoinFragments(frags, 0))
		records = append(records, rec)
		img.Processed = true
		logrus.WithFields(logrus.Fields{"batch": batch.ID, "image": img.FileID, "empty": rec.Empty()}).
			Debug("image parsed")
	}

	consolidated := odds.Merge(records)
	if err := batch.SetConsolidatedOdds(consolidated); err != nil {
		return nil, fmt.Errorf("encode odds: %w", err)
	}
	now := time.Now().UTC()
	batch.State = models.BatchProcessed
	batch.ProcessedAt = &now
	if err := s.store.Save(batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	logrus.WithFields(logrus.Fields{"batch": batch.ID, "images": len(batch.Images), "empty": consolidated.Empty()}).
		Info("capture batch processed")
	return batch, nil
}

// MarkSent moves a PROCESSED batch to its terminal SENT state after the
// delivery collaborator confirmed the handoff.
func (s *Service) MarkSent(sessionKey int64) (*models.CaptureBatch, error) {
	batch, err := s.store.LoadOpen(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if batch == nil {
		return nil, ErrNoBatch
	}
	if batch.State != models.BatchProcessed {
		return nil, ErrNotProcessed
	}
	now := time.Now().UTC()
	batch.State = models.BatchSent
	batch.SentAt = &now
	if err := s.store.Save(batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return batch, nil
}

// Clear discards the session's unsent batch and its blobs. Clearing a session
// with no open batch is a no-op.
func (s *Service) Clear(sessionKey int64) error {
	batch, err := s.store.LoadOpen(sessionKey)
	if err != nil {
		return fmt.Errorf("load batch: %w", err)
	}
	if batch == nil {
		return nil
	}
	return s.discard(batch)
}

func (s *Service) discard(batch *models.CaptureBatch) error {
	for _, img := range batch.Images {
		if err := s.blobs.Remove(img.StoreKey); err != nil {
			logrus.WithError(err).WithField("store_key", img.StoreKey).Warn("failed to remove image blob")
		}
	}
	if err := s.store.Delete(batch.ID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	logrus.WithFields(logrus.Fields{"batch": batch.ID, "session": batch.SessionKey}).Info("capture batch discarded")
	return nil
}
