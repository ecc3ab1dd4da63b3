package entities

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Merchant     string    `json:"merchant"` // carries the processing sentinels, see pkg/receipt
	Total        float64   `gorm:"type:numeric(12,2)" json:"total"`
	PurchaseDate time.Time `json:"purchase_date"`
	Summary      string    `gorm:"type:text" json:"summary,omitempty"`
	ImageURL     string    `json:"image_url"`

	User *Profile `gorm:"foreignKey:UserID"`
	Timestamp
}
