// Package model defines the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The unique index on username is the hard constraint
// backing registration uniqueness; the service-level existence check alone
// cannot close the check-then-act race.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash []byte    `gorm:"type:bytea;not null"`
	Salt         string    `gorm:"type:varchar(64);not null"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
