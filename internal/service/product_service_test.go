package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/internal/model"
)

func TestProductCreate(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
	svc := NewProductService(repo)

	p, err := svc.Create(context.Background(), model.ProductInput{Name: "  Tea ", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "Tea", p.Name)
	assert.False(t, p.Timestamp.IsZero())
	repo.AssertExpectations(t)
}

func TestProductCreateRejectsInvalidInput(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo)

	_, err := svc.Create(context.Background(), model.ProductInput{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), model.ProductInput{Name: "Tea", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUpdateSendsOnlyPresentFields(t *testing.T) {
	repo := new(mockProductRepo)
	var got map[string]interface{}
	repo.On("Update", mock.Anything, "id-1", mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	svc := NewProductService(repo)

	err := svc.Update(context.Background(), "id-1", model.ProductUpdate{
		Price: decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12.5", got["price"].(decimal.Decimal).String())
}

func TestProductUpdateRejectsNegativePrice(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo)

	err := svc.Update(context.Background(), "id-1", model.ProductUpdate{
		Price: decimal.NewNullDecimal(decimal.NewFromInt(-5)),
	})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUpdatePropagatesNotFound(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("Update", mock.Anything, "missing", mock.Anything).Return(ErrNotFound)
	svc := NewProductService(repo)

	name := "Chai"
	err := svc.Update(context.Background(), "missing", model.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductImportSkipsNamelessRows(t *testing.T) {
	repo := new(mockProductRepo)
	var imported []model.Product
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { imported = args.Get(1).([]model.Product) }).
		Return(nil)
	svc := NewProductService(repo)

	csv := "Name,Price\nTea,10\n,99\nCoffee,\n"
	n, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, imported, 2)
	assert.Equal(t, "Tea", imported[0].Name)
	assert.True(t, imported[1].Price.IsZero())
}

func TestProductImportRejectsBadPrice(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo)

	_, err := svc.Import(context.Background(), strings.NewReader("name,price\nTea,10\nCoffee,abc\n"))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "line 3")
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestProductExport(t *testing.T) {
	repo := new(mockProductRepo)
	id := uuid.MustParse("6f1c2a4e-4b8b-4a51-9d0e-0f5b8c7e1a11")
	repo.On("FindAll", mock.Anything).Return([]model.Product{
		{BaseModel: model.BaseModel{ID: id}, Name: "Tea", Price: decimal.RequireFromString("10.5")},
	}, nil)
	svc := NewProductService(repo)

	out, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id,name,price\n6f1c2a4e-4b8b-4a51-9d0e-0f5b8c7e1a11,Tea,10.5\n", string(out))
}

func TestProductExportPropagatesStoreError(t *testing.T) {
	repo := new(mockProductRepo)
	boom := errors.New("db down")
	repo.On("FindAll", mock.Anything).Return([]model.Product(nil), boom)

	_, err := NewProductService(repo).Export(context.Background())
	assert.ErrorIs(t, err, boom)
}
