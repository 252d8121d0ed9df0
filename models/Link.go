package models

import "time"

// Link is a short URL keyword pointing at a long URL.
type Link struct {
	Keyword   string    `gorm:"primaryKey;type:varchar(200)" json:"keyword"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Title     string    `gorm:"type:text" json:"title"`
	IP        string    `gorm:"type:varchar(41)" json:"ip"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}
