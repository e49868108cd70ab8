package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	BaseModel
	Title     string          `gorm:"type:varchar(255)" json:"title"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"amount"`
	Note      string          `gorm:"type:text" json:"note"`
	Timestamp time.Time       `gorm:"index" json:"timestamp"`
}

type ExpenseInput struct {
	Title  string          `json:"title" form:"title"`
	Amount decimal.Decimal `json:"amount" form:"amount"`
	Note   string          `json:"note" form:"note"`
}

type ExpenseUpdate struct {
	Title  *string             `json:"title,omitempty" form:"title"`
	Amount decimal.NullDecimal `json:"amount" form:"amount"`
	Note   *string             `json:"note,omitempty" form:"note"`
}
