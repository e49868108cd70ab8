package repository

import (
	"context"

	"go-shop-backoffice/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	CreateBatch(ctx context.Context, employees []model.Employee) error
	FindAll(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &recordRepo[model.Employee]{db}
}

type AttendanceRepository interface {
	Create(ctx context.Context, mark *model.Attendance) error
	CreateBatch(ctx context.Context, marks []model.Attendance) error
	FindAll(ctx context.Context) ([]model.Attendance, error)
	Delete(ctx context.Context, id string) error
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &recordRepo[model.Attendance]{db}
}
