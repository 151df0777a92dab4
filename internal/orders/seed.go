package orders

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
)

// DemoHistory is the sample history shown to new accounts in development.
func DemoHistory(owner string) []OrderRecord {
	placed := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []OrderRecord{
		{ID: "BCF-9021", Owner: owner, Date: placed(2026, time.January, 5), Status: enums.OrderStatusDelivered, Total: 1250, Items: 3, CreatedAt: placed(2026, time.January, 5)},
		{ID: "BCF-9055", Owner: owner, Date: placed(2026, time.January, 8), Status: enums.OrderStatusInBagging, Total: 420, Items: 1, CreatedAt: placed(2026, time.January, 8)},
	}
}

// Seed appends records, skipping ones already present.
func Seed(ctx context.Context, store HistoryStore, records []OrderRecord) (int, error) {
	added := 0
	for _, record := range records {
		if err := store.Append(ctx, record); err != nil {
			if errors.Is(err, ErrDuplicateOrderID) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}
