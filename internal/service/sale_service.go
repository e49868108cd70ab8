package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-shop-backoffice/internal/csvio"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/internal/ws"
)

// ErrProductNotFound is returned when a sale names an unknown product.
var ErrProductNotFound = errors.New("Product not found")

var salesExportHeader = []string{"item", "quantity", "price", "total", "payment_mode", "timestamp"}

type SaleService interface {
	// Record appends a sale and returns the newest sales, newest first.
	Record(ctx context.Context, in model.SaleInput) ([]model.SaleRow, error)
	List(ctx context.Context) ([]model.SaleRow, error)
	Export(ctx context.Context) ([]byte, error)
}

type saleService struct {
	sales       repository.SaleRepository
	products    repository.ProductRepository
	events      ws.Publisher
	recentLimit int
}

func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository, events ws.Publisher, recentLimit int) SaleService {
	if recentLimit < 1 {
		recentLimit = 5
	}
	return &saleService{sales: sales, products: products, events: events, recentLimit: recentLimit}
}

func (s *saleService) Record(ctx context.Context, in model.SaleInput) ([]model.SaleRow, error) {
	in.Product = strings.TrimSpace(in.Product)
	in.PaymentMode = strings.TrimSpace(in.PaymentMode)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := validate(&in); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, in.Product)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	sale := model.NewSaleRecord(product, in.Quantity, in.PaymentMode, utcNow())
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	publish(s.events, ws.Event{
		Type:    ws.EventSaleRecorded,
		Action:  "created",
		Data:    sale.ToRow(),
		Message: fmt.Sprintf("sold %d x '%s' (%s)", sale.Quantity, sale.Item, sale.PaymentMode),
	})

	recent, err := s.sales.Recent(ctx, s.recentLimit)
	if err != nil {
		return nil, err
	}
	return toRows(recent), nil
}

func (s *saleService) List(ctx context.Context) ([]model.SaleRow, error) {
	sales, err := s.sales.FindAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return toRows(sales), nil
}

// Export renders the whole ledger oldest first.
func (s *saleService) Export(ctx context.Context) ([]byte, error) {
	sales, err := s.sales.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(sales))
	for i := range sales {
		row := sales[i].ToRow()
		records[i] = []string{
			row.Item,
			strconv.Itoa(row.Quantity),
			row.Price.String(),
			row.Total.String(),
			row.PaymentMode,
			row.Timestamp,
		}
	}
	return csvio.Write(salesExportHeader, records)
}

func toRows(sales []model.SaleRecord) []model.SaleRow {
	rows := make([]model.SaleRow, len(sales))
	for i := range sales {
		rows[i] = sales[i].ToRow()
	}
	return rows
}
