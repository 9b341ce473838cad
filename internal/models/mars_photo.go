package models

import (
	"time"
)

// MarsPhoto — снимок марсохода. PhotoID приходит от upstream и уникален,
// однажды записанная строка больше не перезаписывается.
type MarsPhoto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PhotoID    int64     `gorm:"uniqueIndex;not null" json:"photo_id"`
	CameraName string    `gorm:"type:varchar(100)" json:"camera_name"`
	RoverName  string    `gorm:"type:varchar(50)" json:"rover_name"`
	ImgSrc     string    `gorm:"type:text" json:"img_src"`
	EarthDate  string    `gorm:"type:date" json:"earth_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
