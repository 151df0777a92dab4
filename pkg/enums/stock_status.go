package enums

import "fmt"

// StockStatus is the availability badge shown on catalog products.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLimited    StockStatus = "limited"
	StockStatusNewArrival StockStatus = "new_arrival"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusLimited,
	StockStatusNewArrival,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Orderable reports whether buyers may start configuring a product with this status.
func (s StockStatus) Orderable() bool {
	return s.IsValid() && s != StockStatusOutOfStock
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
