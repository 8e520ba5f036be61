package store

import (
	"testing"

	"webbu/skill-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Skill{}, model.SkillInstruction{}))

	return db
}

func TestListByAuthorHandlesInstructionlessSkills(t *testing.T) {
	skills := NewSkills(newTestDB(t))

	require.NoError(t, skills.Create(&model.Skill{VisibleID: "@bare", Steps: "{}", AuthorID: 1}, nil))

	list, err := skills.ListByAuthor(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "@bare", list[0].Skill.VisibleID)
	assert.Equal(t, "", list[0].Instruction)
}

func TestListByAuthorPicksOneInstructionPerSkill(t *testing.T) {
	skills := NewSkills(newTestDB(t))

	require.NoError(t, skills.Create(
		&model.Skill{VisibleID: "@full", Steps: "{}", AuthorID: 2},
		[]string{"alpha phrase", "beta phrase"},
	))

	list, err := skills.ListByAuthor(2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "beta phrase", list[0].Instruction)
}
