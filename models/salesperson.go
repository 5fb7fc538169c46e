// File: /models/salesperson.go
package models

import (
	"time"
)

// Salesperson is a reference entity selectable on match records. Inactive
// salespersons stay visible on historical matches but are excluded from the
// active picker listing.
type Salesperson struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
