package entities

import (
	"github.com/google/uuid"
)

// Profile mirrors the identity record held by the hosted auth provider.
// The ID is the provider's user ID, not generated locally.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	FullName string    `json:"full_name,omitempty"`

	Receipts []*Receipt `gorm:"foreignKey:UserID"`
	Timestamp
}
