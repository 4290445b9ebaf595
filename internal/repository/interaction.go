package repository

import (
	"time"

	"github.com/user/aifilm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add appends one watch event.
func (r *HistoryRepository) Add(h *model.WatchHistory) error {
	if h.WatchedAt.IsZero() {
		h.WatchedAt = time.Now()
	}
	return r.db.Create(h).Error
}

// ListByUser returns a page of the user's history, newest first, with titles
// loaded.
func (r *HistoryRepository) ListByUser(userID, limit, offset int) ([]*model.WatchHistory, error) {
	var histories []*model.WatchHistory
	err := r.db.Preload("Movie").Preload("TVShow").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	return histories, err
}

// CountByUser counts the user's history rows.
func (r *HistoryRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

// Delete removes one history row owned by the user.
func (r *HistoryRepository) Delete(userID, id int) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&model.WatchHistory{}).Error
}

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add saves a title to the watchlist. Re-adding is a no-op.
func (r *WatchlistRepository) Add(item *model.WatchlistItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

// ListByUser returns the user's watchlist, newest first, with titles loaded.
func (r *WatchlistRepository) ListByUser(userID, limit, offset int) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := r.db.Preload("Movie").Preload("TVShow").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// Delete removes one watchlist row owned by the user.
func (r *WatchlistRepository) Delete(userID, id int) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&model.WatchlistItem{}).Error
}
