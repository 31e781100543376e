package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionRecordTransaction = "RECORD_TRANSACTION"
	ActionCreateWarehouse   = "CREATE_WAREHOUSE"
	ActionCreateCategory    = "CREATE_CATEGORY"
)

// ActivityLog tracks who changed what and when. Entries are written in the
// same unit of work as the change they describe.
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nullable when unauthenticated (seed, demo)
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
