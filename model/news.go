package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

News is one published news item on the tourism site.

Id: primary key
CreatedAt/UpdatedAt: bookkeeping timestamps
Title: first caption paragraph when ingested from Telegram, or set by an editor
Date: publication instant, normalized to UTC midnight for ingested items
Text: plain-text body, paragraphs separated by blank lines
Images: JSON array of public image paths, e.g. ["/uploads/abc.jpg"]

Titles act as the ingestion duplicate guard: creation through the content
store is rejected when a record with the same title already exists. This is a
store-level pre-check, not a database constraint.
*/

type News struct {
	Id        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Title     string         `json:"title"`
	Date      time.Time      `json:"date"`
	Text      string         `json:"text"`
	Images    datatypes.JSON `json:"images"`
}
