package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
)

var (
	// ErrEmptyBatch is returned when submitting a batch with no items.
	ErrEmptyBatch = pkgerrors.New(pkgerrors.CodeEmptyBatch, "batch has no items to submit")
	// ErrDuplicateOrderID is returned by a HistoryStore when the id is already recorded.
	ErrDuplicateOrderID = pkgerrors.New(pkgerrors.CodeConflict, "order id already exists")
)

// OrderRecord is an immutable entry in a buyer's order history.
// Date is a calendar date at UTC midnight.
type OrderRecord struct {
	ID        string
	Owner     string
	Date      time.Time
	Status    enums.OrderStatus
	Total     int64
	Items     int
	CreatedAt time.Time
}

// HistoryStore is the append-only order history contract.
type HistoryStore interface {
	Append(ctx context.Context, record OrderRecord) error
	ExistsID(ctx context.Context, id string) (bool, error)
	// ListAll returns the owner's records, most recent first.
	ListAll(ctx context.Context, owner string) ([]OrderRecord, error)
}
