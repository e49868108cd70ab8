package repository

import (
	"context"
	"time"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
)

// SaleQuery is an AND of the optional predicates. Bounds are inclusive.
type SaleQuery struct {
	Start *time.Time
	End   *time.Time
	Item  *string
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.SaleRecord) error
	Recent(ctx context.Context, limit int) ([]model.SaleRecord, error)
	FindAll(ctx context.Context, ascending bool) ([]model.SaleRecord, error)
	Query(ctx context.Context, q SaleQuery) ([]model.SaleRecord, error)
	Count(ctx context.Context) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

// Sales sharing a timestamp are ordered by id so repeated reads agree.
const newestFirst = `"timestamp" DESC, id DESC`

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.SaleRecord) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// Recent returns the newest limit sales, newest first.
func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	err := r.db.WithContext(ctx).Order(newestFirst).Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindAll(ctx context.Context, ascending bool) ([]model.SaleRecord, error) {
	order := newestFirst
	if ascending {
		order = `"timestamp" ASC, id ASC`
	}
	var sales []model.SaleRecord
	err := r.db.WithContext(ctx).Order(order).Find(&sales).Error
	return sales, err
}

// Query applies the present predicates on indexed columns and returns every
// match, newest first. The whole result set is materialized.
func (r *saleRepo) Query(ctx context.Context, q SaleQuery) ([]model.SaleRecord, error) {
	tx := r.db.WithContext(ctx).Model(&model.SaleRecord{})
	if q.Start != nil {
		tx = tx.Where(`"timestamp" >= ?`, *q.Start)
	}
	if q.End != nil {
		tx = tx.Where(`"timestamp" <= ?`, *q.End)
	}
	if q.Item != nil {
		tx = tx.Where("item = ?", *q.Item)
	}

	var sales []model.SaleRecord
	if err := tx.Order(newestFirst).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SaleRecord{}).Count(&n).Error
	return n, err
}
