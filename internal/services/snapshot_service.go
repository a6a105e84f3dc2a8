package services

import (
	"time"

	"gorm.io/gorm"

	"moneta/internal/engine"
	apperrors "moneta/internal/errors"
)

// snapshotService loads a user's records into an engine snapshot.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotLoader.
func NewSnapshotService(db *gorm.DB) SnapshotLoader {
	return &snapshotService{db: db}
}

// Load reads all of a user's active records into an immutable snapshot
// anchored at the given reference time. The engine computes everything else
// from this one read, so projections are consistent even while the ledger
// keeps moving.
func (s *snapshotService) Load(userID string, now time.Time) (*engine.Snapshot, error) {
	snap := &engine.Snapshot{Now: now}

	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&snap.Accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.Transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.Categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.Budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.Plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&snap.Arrangements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snap, nil
}
