package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go-shop-backoffice/internal/csvio"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
)

var (
	expenseExportHeader = []string{"id", "title", "amount", "note", "timestamp"}
	vendorExportHeader  = []string{"id", "name", "phone", "address"}
)

type ExpenseService interface {
	List(ctx context.Context) ([]model.Expense, error)
	Create(ctx context.Context, in model.ExpenseInput) (*model.Expense, error)
	Update(ctx context.Context, id string, in model.ExpenseUpdate) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) List(ctx context.Context) ([]model.Expense, error) {
	return s.expenses.FindAll(ctx)
}

func (s *expenseService) Create(ctx context.Context, in model.ExpenseInput) (*model.Expense, error) {
	expense := &model.Expense{
		Title:     strings.TrimSpace(in.Title),
		Amount:    in.Amount,
		Note:      strings.TrimSpace(in.Note),
		Timestamp: utcNow(),
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, id string, in model.ExpenseUpdate) error {
	fields := updateFields{}.str("title", in.Title).amount("amount", in.Amount).str("note", in.Note)
	return s.expenses.Update(ctx, id, fields)
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}

// Import skips rows without a title. A blank amount is zero.
func (s *expenseService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var expenses []model.Expense
	for i, row := range rows {
		title := strings.TrimSpace(row.Get("title", "Title"))
		if title == "" {
			continue
		}
		amount, err := parseAmount(row.Get("amount", "Amount"), importLine(i), "amount")
		if err != nil {
			return 0, err
		}
		expenses = append(expenses, model.Expense{
			Title:     title,
			Amount:    amount,
			Note:      strings.TrimSpace(row.Get("note", "Note")),
			Timestamp: now,
		})
	}

	if err := s.expenses.CreateBatch(ctx, expenses); err != nil {
		return 0, fmt.Errorf("import expenses: %w", err)
	}
	return len(expenses), nil
}

func (s *expenseService) Export(ctx context.Context) ([]byte, error) {
	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(expenses))
	for i, e := range expenses {
		records[i] = []string{e.ID.String(), e.Title, e.Amount.String(), e.Note, model.FormatTimestamp(e.Timestamp)}
	}
	return csvio.Write(expenseExportHeader, records)
}

type VendorService interface {
	List(ctx context.Context) ([]model.Vendor, error)
	Create(ctx context.Context, in model.VendorInput) (*model.Vendor, error)
	Update(ctx context.Context, id string, in model.VendorUpdate) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
}

type vendorService struct {
	vendors repository.VendorRepository
}

func NewVendorService(vendors repository.VendorRepository) VendorService {
	return &vendorService{vendors: vendors}
}

func (s *vendorService) List(ctx context.Context) ([]model.Vendor, error) {
	return s.vendors.FindAll(ctx)
}

func (s *vendorService) Create(ctx context.Context, in model.VendorInput) (*model.Vendor, error) {
	vendor := &model.Vendor{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Timestamp: utcNow(),
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Update(ctx context.Context, id string, in model.VendorUpdate) error {
	fields := updateFields{}.str("name", in.Name).str("phone", in.Phone).str("address", in.Address)
	return s.vendors.Update(ctx, id, fields)
}

func (s *vendorService) Delete(ctx context.Context, id string) error {
	return s.vendors.Delete(ctx, id)
}

func (s *vendorService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var vendors []model.Vendor
	for _, row := range rows {
		name := strings.TrimSpace(row.Get("name", "Name"))
		if name == "" {
			continue
		}
		vendors = append(vendors, model.Vendor{
			Name:      name,
			Phone:     strings.TrimSpace(row.Get("phone", "Phone")),
			Address:   strings.TrimSpace(row.Get("address", "Address")),
			Timestamp: now,
		})
	}

	if err := s.vendors.CreateBatch(ctx, vendors); err != nil {
		return 0, fmt.Errorf("import vendors: %w", err)
	}
	return len(vendors), nil
}

func (s *vendorService) Export(ctx context.Context) ([]byte, error) {
	vendors, err := s.vendors.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(vendors))
	for i, v := range vendors {
		records[i] = []string{v.ID.String(), v.Name, v.Phone, v.Address}
	}
	return csvio.Write(vendorExportHeader, records)
}
