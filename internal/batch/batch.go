package batch

import (
	"time"

	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/pkg/clock"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/google/uuid"
)

// ErrItemNotFound is returned by Remove when no item carries the id.
var ErrItemNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "batch item not found")

// ConfiguredItem is a committed selection for one product.
type ConfiguredItem struct {
	AssignedID  uuid.UUID
	Product     catalog.Product
	Selection   configurator.Selection
	CommittedAt time.Time
}

// LineTotal is unit price times quantity. It is informational; order totals use unit prices.
func (i ConfiguredItem) LineTotal() int64 {
	return i.Product.UnitPrice * int64(i.Selection.Quantity)
}

// Batch is the ordered draft of configured items awaiting submission.
// A Batch is not safe for concurrent use.
type Batch struct {
	items []ConfiguredItem
	clock clock.Clock
	newID func() (uuid.UUID, error)
}

// New returns an empty batch. Item ids are UUIDv7.
func New(clk clock.Clock) *Batch {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Batch{clock: clk, newID: uuid.NewV7}
}

// Add appends item, assigning an id when it has none.
// A duplicate id is a defect in the caller and is reported as an invariant violation.
func (b *Batch) Add(item ConfiguredItem) (ConfiguredItem, error) {
	if item.AssignedID == uuid.Nil {
		id, err := b.newID()
		if err != nil {
			return ConfiguredItem{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate item id")
		}
		item.AssignedID = id
	}
	if b.indexOf(item.AssignedID) >= 0 {
		return ConfiguredItem{}, pkgerrors.Invariant("duplicate batch item id %s", item.AssignedID)
	}
	if item.CommittedAt.IsZero() {
		item.CommittedAt = b.clock.Now()
	}
	item.Selection = item.Selection.Clone()
	b.items = append(b.items, item)
	return item, nil
}

// CommitSelection builds an item from a finished session and adds it.
func (b *Batch) CommitSelection(product catalog.Product, sel configurator.Selection) (ConfiguredItem, error) {
	return b.Add(ConfiguredItem{Product: product, Selection: sel})
}

// Accept lets a configurator session commit straight into the batch.
func (b *Batch) Accept(product catalog.Product, sel configurator.Selection) error {
	_, err := b.CommitSelection(product, sel)
	return err
}

func (b *Batch) Remove(id uuid.UUID) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound.WithDetails(map[string]any{"item_id": id.String()})
	}
	b.items = append(b.items[:idx:idx], b.items[idx+1:]...)
	return nil
}

// Total sums unit prices across items; quantity does not participate.
func (b *Batch) Total() int64 {
	var total int64
	for _, item := range b.items {
		total += item.Product.UnitPrice
	}
	return total
}

// ExtendedTotal sums unit price times quantity for display.
func (b *Batch) ExtendedTotal() int64 {
	var total int64
	for _, item := range b.items {
		total += item.LineTotal()
	}
	return total
}

func (b *Batch) Clear() { b.items = nil }

func (b *Batch) IsEmpty() bool { return len(b.items) == 0 }

func (b *Batch) Len() int { return len(b.items) }

// Snapshot returns a copy of the items in insertion order.
func (b *Batch) Snapshot() []ConfiguredItem {
	out := make([]ConfiguredItem, len(b.items))
	for i, item := range b.items {
		item.Selection = item.Selection.Clone()
		out[i] = item
	}
	return out
}

func (b *Batch) indexOf(id uuid.UUID) int {
	for i, item := range b.items {
		if item.AssignedID == id {
			return i
		}
	}
	return -1
}
