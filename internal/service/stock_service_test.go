package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/ws"
)

func TestStockLoadAndUnloadAreSignedIncrements(t *testing.T) {
	repo := new(mockStockRepo)
	repo.On("Increment", mock.Anything, "s-1", 4).Return(nil).Once()
	repo.On("Increment", mock.Anything, "s-1", -3).Return(nil).Once()
	events := &recordingPublisher{}
	svc := NewStockService(repo, events)

	require.NoError(t, svc.Load(context.Background(), "s-1", model.StockMovement{Quantity: 4}))
	require.NoError(t, svc.Unload(context.Background(), "s-1", model.StockMovement{Quantity: 3}))

	repo.AssertExpectations(t)
	assert.Equal(t, []string{ws.EventStockUpdate, ws.EventStockUpdate}, events.types())
}

func TestStockMovementRejectsNegativeQuantity(t *testing.T) {
	repo := new(mockStockRepo)
	svc := NewStockService(repo, nil)

	err := svc.Load(context.Background(), "s-1", model.StockMovement{Quantity: -2})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
}

func TestStockMovementUnknownID(t *testing.T) {
	repo := new(mockStockRepo)
	repo.On("Increment", mock.Anything, "nope", 1).Return(ErrNotFound)
	events := &recordingPublisher{}
	svc := NewStockService(repo, events)

	err := svc.Load(context.Background(), "nope", model.StockMovement{Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, events.types())
}

func TestStockAddCreatesWhenNameIsNew(t *testing.T) {
	repo := new(mockStockRepo)
	repo.On("AddByName", mock.Anything, "Milk", 6).Return(nil, nil)
	svc := NewStockService(repo, nil)

	stock, err := svc.Add(context.Background(), model.StockInput{Name: " Milk ", Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, "Milk", stock.Name)
	assert.Equal(t, 6, stock.Quantity)
}

func TestStockImportAlwaysInserts(t *testing.T) {
	repo := new(mockStockRepo)
	var imported []model.Stock
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { imported = args.Get(1).([]model.Stock) }).
		Return(nil)
	svc := NewStockService(repo, nil)

	n, err := svc.Import(context.Background(), strings.NewReader("name,quantity\nMilk,3\nMilk,2.0\n,5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, imported[1].Quantity)
}

func TestStockImportRejectsFractionalQuantity(t *testing.T) {
	svc := NewStockService(new(mockStockRepo), nil)

	_, err := svc.Import(context.Background(), strings.NewReader("name,quantity\nMilk,2.5\n"))
	assert.ErrorIs(t, err, ErrValidation)
}
