package repository

import (
	"context"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	CreateBatch(ctx context.Context, expenses []model.Expense) error
	FindAll(ctx context.Context) ([]model.Expense, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &recordRepo[model.Expense]{db}
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	CreateBatch(ctx context.Context, vendors []model.Vendor) error
	FindAll(ctx context.Context) ([]model.Vendor, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &recordRepo[model.Vendor]{db}
}
