package models

import (
	"time"
)

// Media — снимок APOD (Astronomy Picture of the Day) за одну дату.
// Date — естественный ключ; title/description/url обновляются при повторной загрузке.
type Media struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        string    `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Title       string    `gorm:"type:text" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"type:text" json:"url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
