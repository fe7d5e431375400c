package models

import "time"

// Visitor is an identity derived solely from the observed source
// address: one row per distinct IP, created on first contact and
// overwritten (not merged) on every later contact from the same
// address. This is a deliberate simplification, not a security
// property — there is no account or session behind it.
type Visitor struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// IPAddress is unique by design; size 50 covers IPv4 and IPv6
	IPAddress string `gorm:"uniqueIndex;size:50;not null" json:"ipAddress"`

	// Client-supplied, unvalidated context fields. Last write wins.
	UserAgent string `gorm:"size:255" json:"userAgent"`
	Country   string `gorm:"size:100" json:"country"`
	City      string `gorm:"size:100" json:"city"`

	// Visits owned by this visitor, newest first when loaded
	Visits []Visit `gorm:"foreignKey:VisitorID" json:"visits,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
