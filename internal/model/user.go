package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User represents an operator of the system.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string         `gorm:"type:varchar(20)" json:"phone"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role        string         `gorm:"type:varchar(50);not null" json:"role"`
	WarehouseID *uuid.UUID     `gorm:"type:uuid;index" json:"warehouse_id,omitempty"`
	Warehouse   *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Status      string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
