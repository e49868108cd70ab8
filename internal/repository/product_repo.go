package repository

import (
	"context"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateBatch(ctx context.Context, products []model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ListOptions(ctx context.Context) ([]model.ProductOption, error)
}

type productRepo struct {
	recordRepo[model.Product]
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{recordRepo[model.Product]{db}}
}

// ListOptions returns id/name pairs ordered by name for filter dropdowns.
func (r *productRepo) ListOptions(ctx context.Context) ([]model.ProductOption, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Select("id", "name").Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	options := make([]model.ProductOption, len(products))
	for i, p := range products {
		options[i] = model.ProductOption{ID: p.ID.String(), Name: p.Name}
	}
	return options, nil
}
