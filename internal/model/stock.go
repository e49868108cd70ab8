package model

import "time"

// Stock is a named quantity; it is not linked to a Product.
type Stock struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

type StockInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Quantity int    `json:"quantity" form:"quantity"`
}

// StockMovement is the body of load/unload requests.
type StockMovement struct {
	Quantity int `json:"quantity" form:"quantity" validate:"gte=0"`
}
