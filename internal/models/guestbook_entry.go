package models

import "time"

// GuestbookEntry is a moderated free-text message left against a
// landmark. Every entry starts unapproved and stays out of public
// listings until an out-of-band moderation action flips IsApproved.
type GuestbookEntry struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// LandmarkID must reference an existing landmark at creation time.
	// Like Visit.LandmarkID it is a soft reference afterwards.
	LandmarkID string `gorm:"index;size:64;not null" json:"landmarkId"`

	Name    string `gorm:"size:50;not null" json:"name"`
	Message string `gorm:"size:500;not null" json:"message"`

	IsApproved bool `gorm:"default:false" json:"isApproved"`

	CreatedAt time.Time `json:"createdAt"`
}
