package repository

import (
	"context"
	"time"

	"hotstock/internal/model"

	"gorm.io/gorm"
)

type DanmakuRepository interface {
	Create(ctx context.Context, danmaku *model.Danmaku) error
	HistoryBySymbol(ctx context.Context, symbol string, limit int) ([]model.DanmakuWithUser, error)
	CountSince(ctx context.Context, symbol string, since int64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type danmakuRepository struct {
	db *gorm.DB
}

func NewDanmakuRepository(db *gorm.DB) DanmakuRepository {
	return &danmakuRepository{db: db}
}

func (r *danmakuRepository) Create(ctx context.Context, danmaku *model.Danmaku) error {
	return r.db.WithContext(ctx).Create(danmaku).Error
}

func (r *danmakuRepository) HistoryBySymbol(ctx context.Context, symbol string, limit int) ([]model.DanmakuWithUser, error) {
	var rows []model.DanmakuWithUser
	err := r.db.WithContext(ctx).
		Table("danmaku d").
		Select("d.*, u.username").
		Joins("JOIN users u ON d.user_id = u.id").
		Where("d.stock_symbol = ?", symbol).
		Order("d.timestamp DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *danmakuRepository) CountSince(ctx context.Context, symbol string, since int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Danmaku{}).
		Where("stock_symbol = ? AND timestamp >= ?", symbol, since).
		Count(&count).Error
	return count, err
}

func (r *danmakuRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff.UnixMilli()).
		Delete(&model.Danmaku{})
	return result.RowsAffected, result.Error
}
