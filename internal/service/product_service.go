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

var productExportHeader = []string{"id", "name", "price"}

type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, in model.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
	Options(ctx context.Context) ([]model.ProductOption, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *productService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(&in); err != nil {
		return nil, err
	}

	product := &model.Product{Name: in.Name, Price: in.Price, Timestamp: utcNow()}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, in model.ProductUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if in.Price.Valid && in.Price.Decimal.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	fields := updateFields{}.str("name", in.Name).amount("price", in.Price)
	return s.products.Update(ctx, id, fields)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// Import reads name/price columns (either case). Rows without a name are
// skipped; any malformed price rejects the whole file.
func (s *productService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var products []model.Product
	for i, row := range rows {
		name := strings.TrimSpace(row.Get("name", "Name"))
		if name == "" {
			continue
		}
		price, err := parseAmount(row.Get("price", "Price"), importLine(i), "price")
		if err != nil {
			return 0, err
		}
		if price.IsNegative() {
			return 0, fmt.Errorf("%w: line %d: price cannot be negative", ErrValidation, importLine(i))
		}
		products = append(products, model.Product{Name: name, Price: price, Timestamp: now})
	}

	if err := s.products.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

func (s *productService) Export(ctx context.Context) ([]byte, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(products))
	for i, p := range products {
		records[i] = []string{p.ID.String(), p.Name, p.Price.String()}
	}
	return csvio.Write(productExportHeader, records)
}

func (s *productService) Options(ctx context.Context) ([]model.ProductOption, error) {
	return s.products.ListOptions(ctx)
}
