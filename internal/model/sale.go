package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

const DefaultPaymentMode = "Cash"

// SaleRecord is an immutable ledger entry. Item and Price are snapshots of the
// product at sale time; Total is Quantity*Price computed once at creation.
type SaleRecord struct {
	BaseModel
	ProductID   string          `gorm:"type:varchar(64);index" json:"product_id"`
	Item        string          `gorm:"type:varchar(255);not null;index" json:"item"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Total       decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0" json:"total"`
	PaymentMode string          `gorm:"type:varchar(50);not null;default:'Cash'" json:"payment_mode"`
	Timestamp   time.Time       `gorm:"not null;index" json:"timestamp"`
}

// TableName keeps the shop prefix of the naming strategy: "<shop>_sales".
func (SaleRecord) TableName(namer schema.Namer) string {
	return namer.TableName("Sale")
}

// NewSaleRecord snapshots the product and computes the total.
func NewSaleRecord(product *Product, quantity int, paymentMode string, at time.Time) *SaleRecord {
	if paymentMode == "" {
		paymentMode = DefaultPaymentMode
	}
	return &SaleRecord{
		ProductID:   product.ID.String(),
		Item:        product.Name,
		Quantity:    quantity,
		Price:       product.Price,
		Total:       product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		PaymentMode: paymentMode,
		Timestamp:   at.UTC(),
	}
}

// PaymentModeOrDefault returns the stored mode, or DefaultPaymentMode for legacy empty rows.
func (s *SaleRecord) PaymentModeOrDefault() string {
	if s.PaymentMode == "" {
		return DefaultPaymentMode
	}
	return s.PaymentMode
}

// SaleRow is the wire shape of a ledger entry, timestamp rendered with TimestampLayout.
type SaleRow struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Item        string          `json:"item"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	PaymentMode string          `json:"payment_mode"`
	Timestamp   string          `json:"timestamp"`
}

func (s *SaleRecord) ToRow() SaleRow {
	return SaleRow{
		ID:          s.ID.String(),
		ProductID:   s.ProductID,
		Item:        s.Item,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Total:       s.Total,
		PaymentMode: s.PaymentModeOrDefault(),
		Timestamp:   FormatTimestamp(s.Timestamp),
	}
}

// SaleInput is the body of the sale-entry endpoint.
type SaleInput struct {
	Product     string `json:"product" form:"product" validate:"required"`
	Quantity    int    `json:"quantity" form:"quantity" validate:"gt=0"`
	PaymentMode string `json:"payment_mode" form:"payment_mode"`
}
