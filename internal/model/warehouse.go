package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse statuses.
const (
	WarehouseActive   = "active"
	WarehouseInactive = "inactive"
)

// Warehouse represents a physical storage location.
type Warehouse struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`
	Capacity  int       `gorm:"type:int;not null;default:0" json:"capacity"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
