package model

import (
	"time"

	"gorm.io/datatypes"
)

// Story is a short-lived highlight item. It shares the News shape but lives
// in its own table and is ingested under a separate caption tag.
type Story struct {
	Id        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Title     string         `json:"title"`
	Date      time.Time      `json:"date"`
	Text      string         `json:"text"`
	Images    datatypes.JSON `json:"images"`
}
