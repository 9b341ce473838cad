package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NaturalEvent — природное событие из EONET.
// Coordinates — пара [lon, lat] в jsonb; событие без геометрии получает
// null-координаты и null-дату, но строка все равно сохраняется.
type NaturalEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EventID     string         `gorm:"uniqueIndex;not null" json:"event_id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Category    string         `gorm:"type:varchar(100)" json:"category"`
	Coordinates datatypes.JSON `gorm:"type:jsonb" json:"coordinates"`
	Date        *time.Time     `json:"date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate генерирует uuid на клиенте, без зависимости от
// серверного uuid_generate_v4.
func (e *NaturalEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
