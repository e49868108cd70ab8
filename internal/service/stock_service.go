package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-shop-backoffice/internal/csvio"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/internal/ws"
)

var stockExportHeader = []string{"id", "name", "quantity"}

type StockService interface {
	List(ctx context.Context) ([]model.Stock, error)
	Add(ctx context.Context, in model.StockInput) (*model.Stock, error)
	Delete(ctx context.Context, id string) error
	Load(ctx context.Context, id string, in model.StockMovement) error
	Unload(ctx context.Context, id string, in model.StockMovement) error
	Import(ctx context.Context, src io.Reader) (int, error)
	Export(ctx context.Context) ([]byte, error)
}

type stockService struct {
	stocks repository.StockRepository
	events ws.Publisher
}

func NewStockService(stocks repository.StockRepository, events ws.Publisher) StockService {
	return &stockService{stocks: stocks, events: events}
}

func (s *stockService) List(ctx context.Context) ([]model.Stock, error) {
	return s.stocks.FindAll(ctx)
}

// Add increments the stock row with the same name, or creates it.
func (s *stockService) Add(ctx context.Context, in model.StockInput) (*model.Stock, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(&in); err != nil {
		return nil, err
	}

	stock, err := s.stocks.AddByName(ctx, in.Name, in.Quantity, func() *model.Stock {
		return &model.Stock{Name: in.Name, Quantity: in.Quantity, Timestamp: utcNow()}
	})
	if err != nil {
		return nil, err
	}

	publish(s.events, ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "stock_added",
		Data:    stock,
		Message: fmt.Sprintf("added %d of '%s'", in.Quantity, in.Name),
	})
	return stock, nil
}

func (s *stockService) Delete(ctx context.Context, id string) error {
	if err := s.stocks.Delete(ctx, id); err != nil {
		return err
	}
	publish(s.events, ws.Event{Type: ws.EventStockUpdate, Action: "stock_deleted", Data: map[string]string{"id": id}})
	return nil
}

func (s *stockService) Load(ctx context.Context, id string, in model.StockMovement) error {
	return s.move(ctx, id, in, 1, "stock_loaded")
}

// Unload does not guard against going below zero.
func (s *stockService) Unload(ctx context.Context, id string, in model.StockMovement) error {
	return s.move(ctx, id, in, -1, "stock_unloaded")
}

func (s *stockService) move(ctx context.Context, id string, in model.StockMovement, sign int, action string) error {
	if err := validate(&in); err != nil {
		return err
	}
	delta := sign * in.Quantity
	if err := s.stocks.Increment(ctx, id, delta); err != nil {
		return err
	}
	publish(s.events, ws.Event{
		Type:   ws.EventStockUpdate,
		Action: action,
		Data:   map[string]interface{}{"id": id, "delta": delta},
	})
	return nil
}

// Import always inserts new rows, even when a stock with that name exists.
func (s *stockService) Import(ctx context.Context, src io.Reader) (int, error) {
	rows, err := readImport(src)
	if err != nil {
		return 0, err
	}

	now := utcNow()
	var stocks []model.Stock
	for i, row := range rows {
		name := strings.TrimSpace(row.Get("name", "Name"))
		if name == "" {
			continue
		}
		qty, err := parseCount(row.Get("quantity", "Quantity"), importLine(i), "quantity")
		if err != nil {
			return 0, err
		}
		stocks = append(stocks, model.Stock{Name: name, Quantity: qty, Timestamp: now})
	}

	if err := s.stocks.CreateBatch(ctx, stocks); err != nil {
		return 0, err
	}
	return len(stocks), nil
}

func (s *stockService) Export(ctx context.Context) ([]byte, error) {
	stocks, err := s.stocks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(stocks))
	for i, st := range stocks {
		records[i] = []string{st.ID.String(), st.Name, strconv.Itoa(st.Quantity)}
	}
	return csvio.Write(stockExportHeader, records)
}
