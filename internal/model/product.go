package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock status labels persisted on the product row and recomputed on every
// stock change. Every view of stock state goes through StockStatus — the
// label is never derived ad hoc.
const (
	StatusAvailable = "available"
	StatusLow       = "low"
	StatusOut       = "out"
)

// StockStatus classifies a stock level against its reorder threshold.
// A reorder level of zero means there is no "low" band: anything above
// zero is available.
func StockStatus(stock, reorderLevel int) string {
	switch {
	case stock == 0:
		return StatusOut
	case stock <= reorderLevel:
		return StatusLow
	default:
		return StatusAvailable
	}
}

// Product represents an item held in a warehouse.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Barcode      *string        `gorm:"type:varchar(100);uniqueIndex" json:"barcode,omitempty"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Unit         string         `gorm:"type:varchar(50)" json:"unit"`
	Price        float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	Cost         float64        `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	CurrentStock int            `gorm:"type:int;not null;default:0" json:"current_stock"`
	ReorderLevel int            `gorm:"type:int;not null;default:0" json:"reorder_level"`
	Status       string         `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	ExpiryDate   *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category     *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	WarehouseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Warehouse    *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
