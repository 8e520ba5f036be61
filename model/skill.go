package model

import "time"

type Skill struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// Public opaque handle, always "@"-prefixed. Shared in URLs instead of
	// the sequential primary key
	VisibleID string `gorm:"size:64;uniqueIndex;not null" json:"visible_id"`

	// Serialized action script executed by the browser extension. Opaque
	// to the backend
	Steps string `gorm:"size:2000;not null" json:"steps"`

	AuthorID uint `gorm:"index;not null" json:"author_id"`

	// Domains the skill is allowed to run on
	Hosts StringSlice `gorm:"size:1000" json:"hosts"`

	// Skills are never physically removed so that votes and execution
	// records keep a valid reference
	Deleted bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// SkillInstruction is one trigger phrase for a skill. A skill has many
// alternate phrasings that all trigger the same steps. On edit the whole set
// is replaced, there is no per-row diffing.
type SkillInstruction struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	SkillID     uint      `gorm:"index;not null" json:"-"`
	Instruction string    `gorm:"size:2000;index;not null" json:"instruction"`
	CreatedAt   time.Time `json:"-"`
}
