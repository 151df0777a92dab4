package models

import (
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
)

// OrderRecord is an append-only row in a buyer's order history.
type OrderRecord struct {
	ID        string            `gorm:"column:id;primaryKey"`
	Owner     string            `gorm:"column:owner;not null;index:idx_order_records_owner_created,priority:1"`
	OrderDate time.Time         `gorm:"column:order_date;type:date;not null"`
	Status    enums.OrderStatus `gorm:"column:status;not null"`
	Total     int64             `gorm:"column:total;not null"`
	ItemCount int               `gorm:"column:item_count;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;not null;index:idx_order_records_owner_created,priority:2,sort:desc"`
}

func (OrderRecord) TableName() string { return "order_records" }
