package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SearchHistory records one aggregated dashboard lookup.
type SearchHistory struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Query            string         `gorm:"type:text;not null" json:"query"`
	Ticker           string         `gorm:"type:varchar(50);not null" json:"ticker"`
	Statuses         datatypes.JSON `gorm:"type:jsonb" json:"statuses"`
	DegradedSections pq.StringArray `gorm:"type:text[]" json:"degraded_sections"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SearchHistory model.
func (SearchHistory) TableName() string {
	return "search_history"
}
