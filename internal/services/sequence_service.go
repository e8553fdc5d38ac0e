// internal/services/sequence_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vendordesk/backend/internal/models"
)

// PurchaseSequenceName is the counter that hands out purchase display ids.
const PurchaseSequenceName = "purchaseId"

// SequenceService issues unique, monotonically increasing integers backed by
// the sequence_counters table. Correctness across restarts and concurrent
// servers comes from the storage layer, never from process memory.
type SequenceService struct {
	db *gorm.DB
}

func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db}
}

// Next increments the named counter and returns the new value in a single
// atomic upsert. Two concurrent callers can never receive the same value.
// A missing counter starts at 1.
func (s *SequenceService) Next(name string) (int64, error) {
	var value int64
	err := s.db.Raw(
		`INSERT INTO sequence_counters (name, last_value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET last_value = sequence_counters.last_value + 1
		 RETURNING last_value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", name, err)
	}

	return value, nil
}

// Peek returns the value the next Next call would hand out, without mutating
// the counter. It is a display hint only: a concurrent create can claim the
// value between Peek and a subsequent Next.
func (s *SequenceService) Peek(name string) (int64, error) {
	var counter models.SequenceCounter
	err := s.db.Where("name = ?", name).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %q: %w", name, err)
	}

	return counter.LastValue + 1, nil
}
