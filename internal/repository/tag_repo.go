package repository

import (
	"context"
	"errors"

	"hotstock/internal/model"
	"hotstock/pkg/common"
	"hotstock/pkg/utils"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag, opts ...utils.DBOption) error
	GetByID(ctx context.Context, id uint) (*model.Tag, error)
	GetVisibleBySymbol(ctx context.Context, symbol string) ([]model.Tag, error)
	GetTopVisibleContents(ctx context.Context, symbol string, limit int) ([]string, error)
	AddLike(ctx context.Context, id uint) error
	AddDislike(ctx context.Context, id uint, hideThreshold int) error
	CreateBatch(ctx context.Context, tags []model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Create(tag).Error
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetVisibleBySymbol(ctx context.Context, symbol string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("stock_symbol = ? AND is_hidden = false", symbol).
		Order("likes DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTopVisibleContents(ctx context.Context, symbol string, limit int) ([]string, error) {
	var contents []string
	tx := utils.ApplyOptions(r.db.WithContext(ctx).Model(&model.Tag{}),
		utils.WithWhere("stock_symbol = ? AND is_hidden = false", symbol),
		utils.WithLimit(limit),
	)
	err := tx.Order("likes DESC").Pluck("content", &contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *tagRepository) AddLike(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// AddDislike increments the dislike counter and, in the same statement, flips
// is_hidden once the counter reaches the threshold. The OR keeps the flag
// monotonic even if the threshold is lowered later.
func (r *tagRepository) AddDislike(ctx context.Context, id uint, hideThreshold int) error {
	result := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"dislikes":  gorm.Expr("dislikes + 1"),
			"is_hidden": gorm.Expr("is_hidden OR dislikes + 1 >= ?", hideThreshold),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *tagRepository) CreateBatch(ctx context.Context, tags []model.Tag) error {
	return r.db.WithContext(ctx).Create(&tags).Error
}
