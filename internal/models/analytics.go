package models

import (
	"time"

	"gorm.io/datatypes"
)

// Analytics is the per-day aggregate counter row: exactly one row per
// calendar day, created lazily on the first visit of the day and
// incremented in place afterwards. Rows are never deleted.
type Analytics struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Date is normalized to midnight; the unique index is what makes
	// the concurrent upsert safe
	Date time.Time `gorm:"uniqueIndex;not null" json:"date"`

	// TotalVisits counts every Visit row written that day
	TotalVisits int `gorm:"default:0" json:"totalVisits"`

	// UniqueVisitors counts distinct visitors with at least one visit
	// that day. Bumped only on a visitor's first visit of the day.
	UniqueVisitors int `gorm:"default:0" json:"uniqueVisitors"`

	// LandmarkStats maps landmark id to that day's visit count. Keys
	// appear on the first visit to the landmark that day.
	LandmarkStats datatypes.JSONMap `json:"landmarkStats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName pins the table name; "analytics" does not pluralize.
func (Analytics) TableName() string {
	return "analytics"
}

// StartOfDay normalizes a timestamp to midnight, the identity of an
// Analytics row. All writers and readers must use the same
// normalization or day rows fracture.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
