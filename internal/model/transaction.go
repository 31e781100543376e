package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement kinds. IN and RETURN add stock, OUT removes it, TRANSFER moves
// stock between warehouses and nets to zero on the product total.
const (
	TxTypeIn       = "IN"
	TxTypeOut      = "OUT"
	TxTypeTransfer = "TRANSFER"
	TxTypeReturn   = "RETURN"
)

// ValidTxType reports whether t is one of the four movement kinds.
func ValidTxType(t string) bool {
	switch t {
	case TxTypeIn, TxTypeOut, TxTypeTransfer, TxTypeReturn:
		return true
	}
	return false
}

// StockDelta returns the signed stock change a movement applies.
func StockDelta(txType string, quantity int) int {
	switch txType {
	case TxTypeIn, TxTypeReturn:
		return quantity
	case TxTypeOut:
		return -quantity
	default: // TRANSFER nets to zero on the product's total stock
		return 0
	}
}

// StockTransaction is an immutable movement record. StockAfter and TotalValue
// are snapshots taken in the same unit of work that adjusted the product,
// so the ledger stays derivable from the movement log.
type StockTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Warehouse   *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	UserID      *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	StockAfter  int             `gorm:"type:int;not null" json:"stock_after"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_value"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
