package models

import "time"

// Visit is one recorded instance of a visitor reaching the site or
// stopping at a specific landmark. Rows are written once and never
// updated or deleted.
type Visit struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// VisitorID references the owning Visitor
	VisitorID string `gorm:"index;size:36;not null" json:"visitorId"`

	// LandmarkID is nil for a generic page visit. It is a soft
	// reference: deleting a landmark leaves these rows behind with a
	// dangling id, and readers tolerate the missing lookup.
	LandmarkID *string `gorm:"index;size:64" json:"landmarkId,omitempty"`

	// Duration in seconds, computed by the client and accepted as-is
	Duration *int `json:"duration,omitempty"`

	// Timestamp is set at creation and immutable
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	Landmark *Landmark `gorm:"foreignKey:LandmarkID" json:"landmark,omitempty"`
}
