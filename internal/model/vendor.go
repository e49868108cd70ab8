package model

import "time"

type Vendor struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

type VendorInput struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

type VendorUpdate struct {
	Name    *string `json:"name,omitempty" form:"name"`
	Phone   *string `json:"phone,omitempty" form:"phone"`
	Address *string `json:"address,omitempty" form:"address"`
}
