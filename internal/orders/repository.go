package orders

import (
	"context"
	"errors"

	"github.com/angelmondragon/bcf-portal/internal/repo"
	"github.com/angelmondragon/bcf-portal/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists order history in the order_records table.
type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Append(ctx context.Context, record OrderRecord) error {
	row := models.OrderRecord{
		ID:        record.ID,
		Owner:     record.Owner,
		OrderDate: record.Date,
		Status:    record.Status,
		Total:     record.Total,
		ItemCount: record.Items,
		CreatedAt: record.CreatedAt,
	}
	if err := r.Insert(ctx, &row, ErrDuplicateOrderID); err != nil {
		if errors.Is(err, ErrDuplicateOrderID) {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order record")
	}
	return nil
}

func (r *Repository) ExistsID(ctx context.Context, id string) (bool, error) {
	var row models.OrderRecord
	found, err := r.First(ctx, &row, "id = ?", id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order id")
	}
	return found, nil
}

func (r *Repository) ListAll(ctx context.Context, owner string) ([]OrderRecord, error) {
	var rows []models.OrderRecord
	err := r.DB(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order records")
	}

	out := make([]OrderRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderRecord{
			ID:        row.ID,
			Owner:     row.Owner,
			Date:      row.OrderDate.UTC(),
			Status:    row.Status,
			Total:     row.Total,
			Items:     row.ItemCount,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
