package model

import "time"

type Employee struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Role      string    `gorm:"type:varchar(100)" json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

type EmployeeInput struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
	Role  string `json:"role" form:"role"`
}

type EmployeeUpdate struct {
	Name  *string `json:"name,omitempty" form:"name"`
	Phone *string `json:"phone,omitempty" form:"phone"`
	Role  *string `json:"role,omitempty" form:"role"`
}

const DefaultAttendanceStatus = "in"

// Attendance is a check-in/out mark. EmployeeID is free text, as entered.
type Attendance struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(64);index" json:"employee_id"`
	Status     string    `gorm:"type:varchar(20)" json:"status"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

type AttendanceInput struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Status     string `json:"status" form:"status"`
}
