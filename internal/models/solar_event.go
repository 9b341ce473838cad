package models

import (
	"time"
)

// SolarEvent — событие CME из ленты DONKI.
// Upstream не дает стабильного id, поэтому уникальность держим на паре
// (start_time, source) и вставляем с пропуском конфликтов.
type SolarEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartTime time.Time `gorm:"uniqueIndex:idx_events_start_source;not null" json:"start_time"`
	Details   string    `gorm:"type:text" json:"details"`
	Source    string    `gorm:"uniqueIndex:idx_events_start_source;not null" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName сохраняет историческое имя таблицы events.
func (SolarEvent) TableName() string {
	return "events"
}
