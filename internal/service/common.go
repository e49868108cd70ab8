package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-shop-backoffice/internal/csvio"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/internal/ws"
	"go-shop-backoffice/pkg/validator"
)

var (
	// ErrNotFound is returned for unknown record ids.
	ErrNotFound = repository.ErrNotFound
	// ErrValidation prefixes every rejected input, including bad CSV cells.
	ErrValidation = errors.New("validation failed")
)

func validate(in interface{}) error {
	if err := validator.First(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func publish(p ws.Publisher, ev ws.Event) {
	if p != nil {
		p.Publish(ev)
	}
}

// readImport parses an uploaded CSV. Line numbers in errors count the header as line 1.
func readImport(src io.Reader) ([]csvio.Row, error) {
	rows, err := csvio.ReadRows(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return rows, nil
}

func importLine(i int) int { return i + 2 }

// parseAmount reads a money cell; blank means zero.
func parseAmount(raw string, line int, column string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: line %d: invalid %s %q", ErrValidation, line, column, raw)
	}
	return d, nil
}

// parseCount reads an integer cell; blank means zero. Spreadsheet exports
// like "3.0" are accepted when the fraction is zero.
func parseCount(raw string, line int, column string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	if d, err := decimal.NewFromString(raw); err == nil && d.IsInteger() {
		return int(d.IntPart()), nil
	}
	return 0, fmt.Errorf("%w: line %d: invalid %s %q", ErrValidation, line, column, raw)
}

// updateFields collects the columns a partial update actually carries.
type updateFields map[string]interface{}

func (u updateFields) str(column string, v *string) updateFields {
	if v != nil {
		u[column] = strings.TrimSpace(*v)
	}
	return u
}

func (u updateFields) amount(column string, v decimal.NullDecimal) updateFields {
	if v.Valid {
		u[column] = v.Decimal
	}
	return u
}
