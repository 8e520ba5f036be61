// Package model defines database models
package model

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Username      string `gorm:"size:128;uniqueIndex;not null" json:"username"`
	FirstName     string `gorm:"size:128" json:"first_name"`
	LastName      string `gorm:"size:128" json:"last_name"`
	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`

	// Values are still being settled on, "freetrial" is the only one
	// handed out right now
	Tier string `gorm:"size:12;not null;default:freetrial" json:"tier"`

	// Users can invite other people with their referral code
	ReferralCode  string `gorm:"size:10" json:"-"`
	InvitedByCode string `gorm:"size:10" json:"-"`

	// Free-form JSON settings/preferences blob, opaque to the backend
	Configs string `gorm:"size:1000" json:"configs,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"-"`
}
