package models

import (
	"time"
)

// Asteroid — одно сближение астероида с Землей (NeoWs feed).
// Естественный ключ — пара (name, approach_date).
type Asteroid struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	Name                   string    `gorm:"uniqueIndex:idx_asteroids_name_date;not null" json:"name"`
	ApproachDate           string    `gorm:"type:date;uniqueIndex:idx_asteroids_name_date;not null" json:"approach_date"`
	DiameterMin            float64   `gorm:"type:numeric" json:"diameter_min"`
	IsPotentiallyHazardous bool      `json:"is_potentially_hazardous"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
}
