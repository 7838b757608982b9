package service

import (
	"context"
	"fmt"

	"daily-board/internal/calendar"
	"daily-board/internal/model"

	"gorm.io/gorm"
)

// LedgerStore persists one DayLedger row per (member, date). It holds
// no business rules; callers read-modify-write.
type LedgerStore struct{ db *gorm.DB }

func NewLedgerStore(db *gorm.DB) *LedgerStore { return &LedgerStore{db: db} }

// Get returns the ledger for the pair, or an empty one (ID zero) when
// the row does not exist yet. Missing is not an error.
func (s *LedgerStore) Get(ctx context.Context, memberID int, date calendar.Date) (*model.DayLedger, error) {
	var l model.DayLedger
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, date.String()).
		First(&l).Error
	if err == gorm.ErrRecordNotFound {
		return &model.DayLedger{MemberID: memberID, Date: date.String()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %d/%s: %w", memberID, date, err)
	}
	return &l, nil
}

// Put writes the whole row back, creating it on first write.
func (s *LedgerStore) Put(ctx context.Context, l *model.DayLedger) error {
	var err error
	if l.ID == 0 {
		err = s.db.WithContext(ctx).Create(l).Error
	} else {
		err = s.db.WithContext(ctx).Save(l).Error
	}
	if err != nil {
		return fmt.Errorf("save ledger %d/%s: %w", l.MemberID, l.Date, err)
	}
	return nil
}

// CompletedSet collects every task id the member has completed on any
// day. Scanned in Go rather than with JSON functions so the query
// behaves the same on every dialect.
func (s *LedgerStore) CompletedSet(ctx context.Context, memberID int) (map[uint]bool, error) {
	var ledgers []model.DayLedger
	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Find(&ledgers).Error; err != nil {
		return nil, fmt.Errorf("scan ledgers for member %d: %w", memberID, err)
	}
	done := make(map[uint]bool)
	for _, l := range ledgers {
		for _, id := range l.CompletedTaskIDs {
			done[id] = true
		}
	}
	return done, nil
}

// TrackedSet collects every task id present in any of the member's
// ledgers, assigned or completed. A tracked id already has a home;
// reconciliation must not give it a second one.
func (s *LedgerStore) TrackedSet(ctx context.Context, memberID int) (map[uint]bool, error) {
	var ledgers []model.DayLedger
	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Find(&ledgers).Error; err != nil {
		return nil, fmt.Errorf("scan ledgers for member %d: %w", memberID, err)
	}
	tracked := make(map[uint]bool)
	for _, l := range ledgers {
		for _, id := range l.AssignedTaskIDs {
			tracked[id] = true
		}
		for _, id := range l.CompletedTaskIDs {
			tracked[id] = true
		}
	}
	return tracked, nil
}

// CompletedAnywhere reports whether the member completed the task on
// any day's ledger.
func (s *LedgerStore) CompletedAnywhere(ctx context.Context, memberID int, taskID uint) (bool, error) {
	done, err := s.CompletedSet(ctx, memberID)
	if err != nil {
		return false, err
	}
	return done[taskID], nil
}
