package service

import (
	"context"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
)

type DashboardService interface {
	GetCounts(ctx context.Context) (*model.DashboardCounts, error)
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type dashboardService struct {
	products  counter
	stocks    counter
	employees counter
	sales     counter
}

func NewDashboardService(
	products repository.ProductRepository,
	stocks repository.StockRepository,
	employees repository.EmployeeRepository,
	sales repository.SaleRepository,
) DashboardService {
	return &dashboardService{products: products, stocks: stocks, employees: employees, sales: sales}
}

func (s *dashboardService) GetCounts(ctx context.Context) (*model.DashboardCounts, error) {
	var counts model.DashboardCounts
	for _, c := range []struct {
		repo counter
		dst  *int64
	}{
		{s.products, &counts.Products},
		{s.stocks, &counts.Stocks},
		{s.employees, &counts.Employees},
		{s.sales, &counts.Sales},
	} {
		n, err := c.repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &counts, nil
}
