package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Name  string          `validate:"required"`
	Price decimal.Decimal `validate:"dnonneg"`
}

func TestNegativeDecimalIsRejected(t *testing.T) {
	errs := ValidateStruct(priced{Name: "Tea", Price: decimal.NewFromInt(-1)})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "priced.Price", errs[0].FailedField)
		assert.Equal(t, "dnonneg", errs[0].Tag)
	}
}

func TestFirst(t *testing.T) {
	assert.NoError(t, First(priced{Name: "Tea", Price: decimal.Zero}))
	assert.EqualError(t, First(priced{}), "validation failed: field 'priced.Name' failed on tag 'required'")
}
