package service

import (
	"context"
	"io"
	"strings"

	"go-shop-backoffice/internal/csvio"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
)

var (
	employeeExportHeader   = []string{"id", "name", "phone", "role"}
	attendanceExportHeader = []string{"id", "employee_id", "status", "timestamp"}
)

type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error)
	Update(ctx context.Context, id string, in model.EmployeeUpdate) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.employees.FindAll(ctx)
}

func (s *employeeService) Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	employee := &model.Employee{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      strings.TrimSpace(in.Role),
		Timestamp: utcNow(),
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, id string, in model.EmployeeUpdate) error {
	fields := updateFields{}.str("name", in.Name).str("phone", in.Phone).str("role", in.Role)
	return s.employees.Update(ctx, id, fields)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

func (s *employeeService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var employees []model.Employee
	for _, row := range rows {
		name := strings.TrimSpace(row.Get("name", "Name"))
		if name == "" {
			continue
		}
		employees = append(employees, model.Employee{
			Name:      name,
			Phone:     strings.TrimSpace(row.Get("phone", "Phone")),
			Role:      strings.TrimSpace(row.Get("role", "Role")),
			Timestamp: now,
		})
	}

	if err := s.employees.CreateBatch(ctx, employees); err != nil {
		return 0, err
	}
	return len(employees), nil
}

func (s *employeeService) Export(ctx context.Context) ([]byte, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(employees))
	for i, e := range employees {
		records[i] = []string{e.ID.String(), e.Name, e.Phone, e.Role}
	}
	return csvio.Write(employeeExportHeader, records)
}

type AttendanceService interface {
	List(ctx context.Context) ([]model.Attendance, error)
	Mark(ctx context.Context, in model.AttendanceInput) (*model.Attendance, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
}

type attendanceService struct {
	marks repository.AttendanceRepository
}

func NewAttendanceService(marks repository.AttendanceRepository) AttendanceService {
	return &attendanceService{marks: marks}
}

func (s *attendanceService) List(ctx context.Context) ([]model.Attendance, error) {
	return s.marks.FindAll(ctx)
}

func attendanceStatus(raw string) string {
	if status := strings.TrimSpace(raw); status != "" {
		return status
	}
	return model.DefaultAttendanceStatus
}

func (s *attendanceService) Mark(ctx context.Context, in model.AttendanceInput) (*model.Attendance, error) {
	mark := &model.Attendance{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		Status:     attendanceStatus(in.Status),
		Timestamp:  utcNow(),
	}
	if err := s.marks.Create(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	return s.marks.Delete(ctx, id)
}

// Import skips rows without an employee id. Imported marks are stamped now.
func (s *attendanceService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var marks []model.Attendance
	for _, row := range rows {
		employeeID := strings.TrimSpace(row.Get("employee_id", "Employee ID", "EmployeeID"))
		if employeeID == "" {
			continue
		}
		marks = append(marks, model.Attendance{
			EmployeeID: employeeID,
			Status:     attendanceStatus(row.Get("status", "Status")),
			Timestamp:  now,
		})
	}

	if err := s.marks.CreateBatch(ctx, marks); err != nil {
		return 0, err
	}
	return len(marks), nil
}

func (s *attendanceService) Export(ctx context.Context) ([]byte, error) {
	marks, err := s.marks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(marks))
	for i, m := range marks {
		records[i] = []string{m.ID.String(), m.EmployeeID, m.Status, model.FormatTimestamp(m.Timestamp)}
	}
	return csvio.Write(attendanceExportHeader, records)
}
