package repository

import (
	"context"
	"errors"

	"hotstock/internal/dto"
	"hotstock/internal/model"
	"hotstock/pkg/common"
	"hotstock/pkg/utils"

	"gorm.io/gorm"
)

type StockRepository interface {
	List(ctx context.Context, param dto.ListStocksParam, opts ...utils.DBOption) ([]model.Stock, error)
	GetBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Stock, error)
	GetAll(ctx context.Context) ([]model.Stock, error)
	ApplyPriceDelta(ctx context.Context, symbol string, newPrice, changeDelta float64) error
	UpdateHeatScore(ctx context.Context, symbol string, score float64) error
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, stocks []model.Stock) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) List(ctx context.Context, param dto.ListStocksParam, opts ...utils.DBOption) ([]model.Stock, error) {
	var stocks []model.Stock

	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if param.Market != "" && param.Market != "All" {
		tx = tx.Where("market = ?", param.Market)
	}
	if param.Industry != "" && param.Industry != "All" {
		tx = tx.Where("industry = ?", param.Industry)
	}

	if err := tx.Order("heat_score DESC").Find(&stocks).Error; err != nil {
		return nil, err
	}

	return stocks, nil
}

func (r *stockRepository) GetBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Stock, error) {
	var stock model.Stock
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if err := tx.Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return &stock, nil
}

func (r *stockRepository) GetAll(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	if err := r.db.WithContext(ctx).Order("heat_score DESC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// ApplyPriceDelta persists one simulated tick for a single stock. The change
// percent is accumulated in-database on top of its previous value.
func (r *stockRepository) ApplyPriceDelta(ctx context.Context, symbol string, newPrice, changeDelta float64) error {
	result := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"price":          newPrice,
			"change_percent": gorm.Expr("change_percent + ?", changeDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *stockRepository) UpdateHeatScore(ctx context.Context, symbol string, score float64) error {
	return r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("symbol = ?", symbol).
		Update("heat_score", score).Error
}

func (r *stockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Stock{}).Count(&count).Error
	return count, err
}

func (r *stockRepository) CreateBatch(ctx context.Context, stocks []model.Stock) error {
	return r.db.WithContext(ctx).Create(&stocks).Error
}
