package model

import "time"

// SkillVote records a +1/-1 from a user or guest, together with the URL it
// was cast on so we can tell where a skill works well.
type SkillVote struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	SkillID    uint   `gorm:"index;not null"`
	UserID     *uint  // nil when not logged in
	GuestID    string `gorm:"size:128"`
	Vote       int
	CurrentURL string `gorm:"size:300"`
	CreatedAt  time.Time
}

// SkillExecution records a single run of a skill by a user or guest.
type SkillExecution struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	SkillID uint   `gorm:"index;not null"`
	UserID  *uint
	GuestID string `gorm:"size:128"`

	// "click" or "keyboard"
	TriggerMethod string `gorm:"size:20"`
	CurrentURL    string `gorm:"size:300"`
	CreatedAt     time.Time
}
