package models

import (
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
)

// CatalogProduct is the persisted catalog listing.
type CatalogProduct struct {
	ID          int64             `gorm:"column:id;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	UnitPrice   int64             `gorm:"column:unit_price;not null"`
	Category    string            `gorm:"column:category;not null"`
	Description string            `gorm:"column:description;not null;default:''"`
	Stock       enums.StockStatus `gorm:"column:stock;not null"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string { return "catalog_products" }
