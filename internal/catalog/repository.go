package catalog

import (
	"context"

	"github.com/angelmondragon/bcf-portal/internal/repo"
	"github.com/angelmondragon/bcf-portal/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"gorm.io/gorm"
)

// Repository reads active catalog listings from the catalog_products table.
type Repository struct {
	repo.Base
}

// NewRepository binds the repository to a GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	var row models.CatalogProduct
	found, err := r.First(ctx, &row, "id = ? AND is_active = ?", id, true)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !found {
		return Product{}, ErrProductNotFound
	}
	return fromModel(row), nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	var rows []models.CatalogProduct
	if err := r.DB(ctx).Where("is_active = ?", true).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Upsert writes a listing, used by seeding and admin tooling.
func (r *Repository) Upsert(ctx context.Context, p Product) error {
	if err := p.validate(); err != nil {
		return err
	}
	row := models.CatalogProduct{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock,
		IsActive:    true,
	}
	if err := r.DB(ctx).Save(&row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save product")
	}
	return nil
}

func fromModel(row models.CatalogProduct) Product {
	return Product{
		ID:          row.ID,
		Name:        row.Name,
		UnitPrice:   row.UnitPrice,
		Category:    row.Category,
		Description: row.Description,
		Stock:       row.Stock,
	}
}
