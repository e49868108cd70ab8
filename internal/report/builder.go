// Package report answers "show me sales matching these filters, summarized two
// ways": per calendar day and per product and payment mode.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/pkg/logger"
)

// ErrStoreUnavailable wraps any failure of the ledger or product lookups.
// No partial report is ever returned alongside it.
var ErrStoreUnavailable = errors.New("sales ledger unavailable")

const dayLayout = "2006-01-02"

// LedgerStore is the read side of the sales ledger. Results must be ordered by
// timestamp descending.
type LedgerStore interface {
	Query(ctx context.Context, q repository.SaleQuery) ([]model.SaleRecord, error)
}

// ProductDirectory resolves a product id to its current name and price.
// Unknown ids return repository.ErrNotFound.
type ProductDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// Filter is the request payload. Every field is optional.
type Filter struct {
	StartDate string `json:"start_date" query:"start_date"`
	EndDate   string `json:"end_date" query:"end_date"`
	ProductID string `json:"product_id" query:"product_id"`
}

// Bucket accumulates quantity and amount of the rows that fall into it.
type Bucket struct {
	Qty    int64           `json:"qty"`
	Amount decimal.Decimal `json:"amount"`
}

func (b *Bucket) add(r *model.SaleRecord) {
	b.Qty += int64(r.Quantity)
	b.Amount = b.Amount.Add(r.Total)
}

// Report is the builder output.
type Report struct {
	Rows             []model.SaleRow              `json:"rows"`
	ByDate           map[string]*Bucket           `json:"by_date"`
	ByProductPayment map[string]map[string]*Bucket `json:"by_product_payment"`
}

type Builder struct {
	ledger   LedgerStore
	products ProductDirectory
}

func NewBuilder(ledger LedgerStore, products ProductDirectory) *Builder {
	return &Builder{ledger: ledger, products: products}
}

// Build runs the ledger query and consolidates the result.
//
// An unparseable date bound or an unknown product id drops that filter instead
// of failing the request; both cases are logged at WARN.
func (b *Builder) Build(ctx context.Context, f Filter) (*Report, error) {
	q, err := b.resolve(ctx, f)
	if err != nil {
		return nil, err
	}

	records, err := b.ledger.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	slices.SortStableFunc(records, func(x, y model.SaleRecord) int {
		if c := y.Timestamp.Compare(x.Timestamp); c != 0 {
			return c
		}
		return bytes.Compare(y.ID[:], x.ID[:])
	})

	return Consolidate(records), nil
}

// resolve turns the raw filter into a ledger query, dropping what cannot be parsed or resolved.
func (b *Builder) resolve(ctx context.Context, f Filter) (repository.SaleQuery, error) {
	var q repository.SaleQuery
	log := logger.FromContext(ctx)

	if f.StartDate != "" {
		if t, ok := ParseBound(f.StartDate); ok {
			q.Start = &t
		} else {
			log.Warnw("ignoring unparseable report bound", "field", "start_date", "value", f.StartDate)
		}
	}
	if f.EndDate != "" {
		if t, ok := ParseBound(f.EndDate); ok {
			q.End = &t
		} else {
			log.Warnw("ignoring unparseable report bound", "field", "end_date", "value", f.EndDate)
		}
	}

	if f.ProductID != "" {
		product, err := b.products.FindByID(ctx, f.ProductID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warnw("ignoring unknown product filter", "product_id", f.ProductID)
		case err != nil:
			return q, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		default:
			name := product.Name
			q.Item = &name
		}
	}

	return q, nil
}

// Consolidate renders rows and both summaries from records already in report order.
func Consolidate(records []model.SaleRecord) *Report {
	rep := &Report{
		Rows:             make([]model.SaleRow, 0, len(records)),
		ByDate:           map[string]*Bucket{},
		ByProductPayment: map[string]map[string]*Bucket{},
	}

	for i := range records {
		r := &records[i]
		rep.Rows = append(rep.Rows, r.ToRow())

		day := r.Timestamp.UTC().Format(dayLayout)
		dayBucket := rep.ByDate[day]
		if dayBucket == nil {
			dayBucket = &Bucket{}
			rep.ByDate[day] = dayBucket
		}
		dayBucket.add(r)

		modes := rep.ByProductPayment[r.Item]
		if modes == nil {
			modes = map[string]*Bucket{}
			rep.ByProductPayment[r.Item] = modes
		}
		mode := r.PaymentModeOrDefault()
		modeBucket := modes[mode]
		if modeBucket == nil {
			modeBucket = &Bucket{}
			modes[mode] = modeBucket
		}
		modeBucket.add(r)
	}

	return rep
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	dayLayout,
}

// ParseBound parses an ISO-8601 date or date-time. The wall clock is taken as
// UTC: a trailing offset is replaced, not converted.
func ParseBound(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
