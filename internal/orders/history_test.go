package orders

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS order_records (
  id TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  order_date DATE NOT NULL,
  status TEXT NOT NULL,
  total INTEGER NOT NULL,
  item_count INTEGER NOT NULL,
  created_at DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func historyRecord(id, owner string, created time.Time) OrderRecord {
	return OrderRecord{
		ID:        id,
		Owner:     owner,
		Date:      time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC),
		Status:    enums.OrderStatusPending,
		Total:     800,
		Items:     2,
		CreatedAt: created,
	}
}

func historyStores(t *testing.T) map[string]HistoryStore {
	return map[string]HistoryStore{
		"memory": NewMemoryHistory(),
		"gorm":   NewRepository(setupOrdersTestDB(t)),
	}
}

func TestHistoryStoreContract(t *testing.T) {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	for name, store := range historyStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, historyRecord("BCF-000001", "owner-1", base)))
			require.NoError(t, store.Append(ctx, historyRecord("BCF-000002", "owner-1", base.Add(time.Hour))))
			require.NoError(t, store.Append(ctx, historyRecord("BCF-000003", "owner-2", base)))

			err := store.Append(ctx, historyRecord("BCF-000001", "owner-2", base))
			assert.True(t, errors.Is(err, ErrDuplicateOrderID), "expected duplicate id error, got %v", err)

			exists, err := store.ExistsID(ctx, "BCF-000003")
			require.NoError(t, err)
			assert.True(t, exists)
			exists, err = store.ExistsID(ctx, "BCF-999999")
			require.NoError(t, err)
			assert.False(t, exists)

			list, err := store.ListAll(ctx, "owner-1")
			require.NoError(t, err)
			want := []OrderRecord{
				historyRecord("BCF-000002", "owner-1", base.Add(time.Hour)),
				historyRecord("BCF-000001", "owner-1", base),
			}
			// Drivers may round-trip timestamps with a different location or precision.
			if diff := cmp.Diff(want, list, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Fatalf("history mismatch (-want +got):\n%s", diff)
			}

			empty, err := store.ListAll(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestMemoryHistoryOrdersSameTimestampByInsertion(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, historyRecord("BCF-000001", "o", at)))
	require.NoError(t, store.Append(ctx, historyRecord("BCF-000002", "o", at)))

	list, err := store.ListAll(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, "BCF-000002", list[0].ID)
}

func TestSeedDemoHistory(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	added, err := Seed(ctx, store, DemoHistory("demo"))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = Seed(ctx, store, DemoHistory("demo"))
	require.NoError(t, err)
	assert.Equal(t, 0, added, "reseeding should skip existing ids")

	list, err := store.ListAll(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BCF-9055", list[0].ID)
	assert.Equal(t, enums.OrderStatusInBagging, list[0].Status)
	assert.Equal(t, int64(1250), list[1].Total)
}
