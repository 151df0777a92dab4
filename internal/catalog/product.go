package catalog

import (
	"context"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
)

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

// MaxUnitPrice bounds listings so price times quantity stays well inside int64.
const MaxUnitPrice = 1_000_000

// Product is an immutable catalog listing. UnitPrice is in whole currency units.
type Product struct {
	ID          int64
	Name        string
	UnitPrice   int64
	Category    string
	Description string
	Stock       enums.StockStatus
}

// Reader is the read-only catalog surface consumed by the configurator.
type Reader interface {
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

func (p Product) validate() error {
	switch {
	case p.ID <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	case p.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	case p.UnitPrice < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
	case p.UnitPrice > MaxUnitPrice:
		return pkgerrors.New(pkgerrors.CodeValidation, "product price exceeds the listing limit")
	case !p.Stock.IsValid():
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid stock status")
	}
	return nil
}
