package models

import (
	"time"
)

// Exoplanet — планета из NASA Exoplanet Archive, радиус в радиусах Земли.
type Exoplanet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Radius    float64   `gorm:"type:numeric" json:"radius"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
