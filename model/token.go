package model

import "time"

// RememberMeToken is one issued token pair. A user may hold several rows at
// once (one per device plus any magic links that haven't been clicked yet).
// A pair only authenticates when user id, token and series id all match a
// stored row exactly.
type RememberMeToken struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	UserID        uint   `gorm:"index;not null"`
	Token         string `gorm:"size:256;not null"`
	TokenSeriesID string `gorm:"size:256;not null"`
	CreatedAt     time.Time
}
