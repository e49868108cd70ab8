package service

import (
	"context"

	"go-shop-backoffice/internal/export"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/report"
	"go-shop-backoffice/internal/repository"
)

type ReportService interface {
	Build(ctx context.Context, f report.Filter) (*report.Report, error)
	Workbook(ctx context.Context, f report.Filter) ([]byte, error)
	ProductOptions(ctx context.Context) ([]model.ProductOption, error)
}

type reportService struct {
	builder  *report.Builder
	products repository.ProductRepository
}

func NewReportService(sales repository.SaleRepository, products repository.ProductRepository) ReportService {
	return &reportService{builder: report.NewBuilder(sales, products), products: products}
}

func (s *reportService) Build(ctx context.Context, f report.Filter) (*report.Report, error) {
	return s.builder.Build(ctx, f)
}

func (s *reportService) Workbook(ctx context.Context, f report.Filter) ([]byte, error) {
	rep, err := s.builder.Build(ctx, f)
	if err != nil {
		return nil, err
	}
	return export.ReportWorkbook(rep)
}

func (s *reportService) ProductOptions(ctx context.Context) ([]model.ProductOption, error) {
	return s.products.ListOptions(ctx)
}
