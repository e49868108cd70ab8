package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Shop is the single account a deployment authenticates against.
// The table is shared by every deployment, so it is never prefixed.
type Shop struct {
	BaseModel
	ShopName    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_username" json:"shop_name" validate:"required"`
	Username    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_username" json:"username" validate:"required"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"`
	MachineCode string     `gorm:"type:varchar(64);default:''" json:"machine_code,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}

// SetPassword hashes and sets the shop's password
func (s *Shop) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (s *Shop) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) == nil
}

// IsExpired reports whether the subscription ended before now. No expiry means never.
func (s *Shop) IsExpired(now time.Time) bool {
	return s.ExpiryDate != nil && now.After(*s.ExpiryDate)
}

// BoundElsewhere reports whether the account is bound to a machine other than code.
func (s *Shop) BoundElsewhere(code string) bool {
	return s.MachineCode != "" && s.MachineCode != code
}

// AuthenticatedShop is the request-scoped identity produced by the session middleware.
type AuthenticatedShop struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
