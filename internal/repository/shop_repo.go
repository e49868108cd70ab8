package repository

import (
	"context"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
)

type ShopRepository interface {
	FindByUsername(ctx context.Context, shopName, username string) (*model.Shop, error)
	FindByID(ctx context.Context, id string) (*model.Shop, error)
	Create(ctx context.Context, shop *model.Shop) error
	Update(ctx context.Context, shop *model.Shop) error
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db}
}

func (r *shopRepo) FindByUsername(ctx context.Context, shopName, username string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).
		Where("shop_name = ? AND username = ?", shopName, username).
		First(&shop).Error
	if err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}

func (r *shopRepo) FindByID(ctx context.Context, id string) (*model.Shop, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var shop model.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", uid).Error; err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepo) Update(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}
