package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveSnapshot(slot *SaveSlot, promoted []PromotedEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Upsert keyed by session_id so repeated saves overwrite the slot.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "library_version", "total_crafts", "balance", "snapshot", "updated_at"}),
		}).Create(slot).Error; err != nil {
			return err
		}
		if len(promoted) == 0 {
			return nil
		}
		for i := range promoted {
			promoted[i].SessionID = slot.SessionID
		}
		// Promotions are append-only: existing rows are left untouched.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&promoted).Error
	})
}

func (r *sqliteRepository) LoadSnapshot(sessionID string) (*SaveSlot, error) {
	var slot SaveSlot
	if err := r.db.Where("session_id = ?", sessionID).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *sqliteRepository) ListSnapshots() ([]SaveSlot, error) {
	var slots []SaveSlot
	err := r.db.Omit("snapshot").Order("updated_at desc").Order("id desc").Find(&slots).Error
	return slots, err
}

func (r *sqliteRepository) DeleteSnapshot(sessionID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ?", sessionID).Delete(&SaveSlot{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSnapshotNotFound
		}
		return tx.Where("session_id = ?", sessionID).Delete(&PromotedEntry{}).Error
	})
}

func (r *sqliteRepository) ListPromoted(sessionID string) ([]PromotedEntry, error) {
	var out []PromotedEntry
	err := r.db.Where("session_id = ?", sessionID).Order("id asc").Find(&out).Error
	return out, err
}
