package repository

import (
	"context"
	"errors"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	Create(ctx context.Context, stock *model.Stock) error
	CreateBatch(ctx context.Context, stocks []model.Stock) error
	FindAll(ctx context.Context) ([]model.Stock, error)
	FindByName(ctx context.Context, name string) (*model.Stock, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Increment(ctx context.Context, id string, delta int) error
	AddByName(ctx context.Context, name string, quantity int, create func() *model.Stock) (*model.Stock, error)
}

type stockRepo struct {
	recordRepo[model.Stock]
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{recordRepo[model.Stock]{db}}
}

// FindByName returns the oldest stock row with that exact name.
func (r *stockRepo) FindByName(ctx context.Context, name string) (*model.Stock, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&stock).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

// Increment adds delta (negative to unload) in a single UPDATE so concurrent
// loads never overwrite each other.
func (r *stockRepo) Increment(ctx context.Context, id string, delta int) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("id = ?", uid).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddByName increments the row named name, or inserts create() when none exists.
func (r *stockRepo) AddByName(ctx context.Context, name string, quantity int, create func() *model.Stock) (*model.Stock, error) {
	var result *model.Stock
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Stock
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).Order("created_at ASC").First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = create()
			return tx.Create(result).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&existing).UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			return err
		}
		existing.Quantity += quantity
		result = &existing
		return nil
	})
	return result, err
}
