package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name      string          `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// ProductInput is the create payload (form or JSON).
type ProductInput struct {
	Name  string          `json:"name" form:"name" validate:"required"`
	Price decimal.Decimal `json:"price" form:"price" validate:"dnonneg"`
}

// ProductUpdate carries only the fields the caller sent.
type ProductUpdate struct {
	Name  *string             `json:"name,omitempty" form:"name"`
	Price decimal.NullDecimal `json:"price" form:"price"`
}

// ProductOption is the id/name pair used by the report filter dropdown.
type ProductOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
