package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned for unknown or malformed ids.
var ErrNotFound = errors.New("record not found")

const importBatchSize = 200

// recordRepo holds the CRUD shared by every shop-owned table.
// Embed it in the concrete repositories.
type recordRepo[T any] struct {
	db *gorm.DB
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return uid, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *recordRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *recordRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", uid).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *recordRepo[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts all items in one transaction; nothing is kept if one row fails.
func (r *recordRepo[T]) CreateBatch(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, importBatchSize).Error
	})
}

// Update applies the given columns. An unknown id is ErrNotFound.
func (r *recordRepo[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return r.exists(ctx, uid)
	}
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent: removing an unknown id succeeds.
func (r *recordRepo[T]) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return nil
	}
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", uid).Error
}

func (r *recordRepo[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

func (r *recordRepo[T]) exists(ctx context.Context, uid uuid.UUID) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", uid).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
