package repository

import (
	"context"
	"errors"

	"hotstock/internal/model"
	"hotstock/pkg/common"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	Add(ctx context.Context, entry *model.WatchlistEntry) error
	Remove(ctx context.Context, userID uint, symbol string) error
	Exists(ctx context.Context, userID uint, symbol string) (bool, error)
	GetStocksByUser(ctx context.Context, userID uint) ([]model.Stock, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Add inserts one membership row. The composite primary key makes a repeat
// insert fail, surfaced as common.ErrDuplicate.
func (r *watchlistRepository) Add(ctx context.Context, entry *model.WatchlistEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrDuplicate
		}
		return err
	}
	return nil
}

// Remove is idempotent: deleting a non-member pair is a no-op success.
func (r *watchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND stock_symbol = ?", userID, symbol).
		Delete(&model.WatchlistEntry{}).Error
}

func (r *watchlistRepository) Exists(ctx context.Context, userID uint, symbol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchlistEntry{}).
		Where("user_id = ? AND stock_symbol = ?", userID, symbol).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *watchlistRepository) GetStocksByUser(ctx context.Context, userID uint) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.WithContext(ctx).
		Table("stocks s").
		Select("s.*").
		Joins("JOIN watchlist w ON s.symbol = w.stock_symbol").
		Where("w.user_id = ?", userID).
		Scan(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}
