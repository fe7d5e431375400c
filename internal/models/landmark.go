package models

import "time"

// Position is the optional placement of a landmark inside the 3D scene.
// The coordinates come from the scene editor and are stored as given,
// without range validation.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmark is a named stop-point tied to an object in the externally
// rendered 3D scene. The id is a stable slug (e.g. "movie-theater")
// assigned when the landmark is created; the scene references it and
// guestbook entries and visits point at it.
type Landmark struct {
	// ID is either a caller-supplied slug or a generated UUID
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Details     string `gorm:"type:text" json:"details"`

	// SplineObjectName is the name of the matching object in the hosted
	// 3D scene. Opaque to this subsystem beyond being non-empty.
	SplineObjectName string `gorm:"size:255;not null" json:"splineObjectName"`

	// Position is stored as a JSON document; nil means the scene decides
	Position *Position `gorm:"serializer:json" json:"position,omitempty"`

	// IsActive gates visibility in the public-facing scene
	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
