package store

import (
	"webbu/skill-api/model"

	"gorm.io/gorm"
)

// SkillMatch pairs a skill with one of its instruction texts. Search results
// and profile listings both come back in this shape.
type SkillMatch struct {
	Skill       model.Skill
	Instruction string
}

// Skills is the durable store of skill records and their trigger phrases.
// Every read is implicitly filtered to non-deleted skills.
type Skills struct {
	DB *gorm.DB
}

func NewSkills(db *gorm.DB) *Skills {
	return &Skills{DB: db}
}

// Create inserts the skill together with its instruction set in one
// transaction so a failed instruction insert leaves no half-published skill.
func (s *Skills) Create(skill *model.Skill, instructions []string) error {
	return translate(s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(skill).Error; err != nil {
			return err
		}

		return insertInstructions(tx, skill.ID, instructions)
	}))
}

// Update rewrites steps and hosts and wholesale-replaces the instruction set
// (delete all, insert new, no diffing), all in one transaction.
func (s *Skills) Update(skill *model.Skill, steps string, hosts model.StringSlice, instructions []string) error {
	return translate(s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(skill).Updates(map[string]interface{}{
			"steps": steps,
			"hosts": hosts,
		}).Error
		if err != nil {
			return err
		}

		err = tx.Where("skill_id = ?", skill.ID).Delete(model.SkillInstruction{}).Error
		if err != nil {
			return err
		}

		return insertInstructions(tx, skill.ID, instructions)
	}))
}

func insertInstructions(tx *gorm.DB, skillID uint, instructions []string) error {
	for _, text := range instructions {
		err := tx.Create(&model.SkillInstruction{
			SkillID:     skillID,
			Instruction: text,
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Delete flips the logical flag only. Votes and execution records keep
// referencing the row.
func (s *Skills) Delete(skill *model.Skill) error {
	return translate(s.DB.
		Model(skill).
		Update("deleted", true).
		Error)
}

func (s *Skills) FindByVisibleID(visibleID string) (*model.Skill, error) {
	var skill model.Skill
	err := s.DB.
		Where("deleted = ? AND visible_id = ?", false, visibleID).
		First(&skill).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &skill, nil
}

// FindWithInstructions returns the skill and all its trigger phrases.
func (s *Skills) FindWithInstructions(visibleID string) (*model.Skill, []string, error) {
	skill, err := s.FindByVisibleID(visibleID)
	if err != nil {
		return nil, nil, err
	}

	var instructions []string
	err = s.DB.
		Model(model.SkillInstruction{}).
		Where("skill_id = ?", skill.ID).
		Order("id").
		Pluck("instruction", &instructions).
		Error
	if err != nil {
		return nil, nil, translate(err)
	}

	return skill, instructions, nil
}

// ListByAuthor returns the author's skills with one representative
// instruction each.
func (s *Skills) ListByAuthor(authorID uint) ([]SkillMatch, error) {
	var skills []model.Skill
	err := s.DB.
		Where("deleted = ? AND author_id = ?", false, authorID).
		Order("id").
		Find(&skills).
		Error
	if err != nil {
		return nil, translate(err)
	}

	results := make([]SkillMatch, 0, len(skills))
	for _, skill := range skills {
		var text string
		err := s.DB.
			Model(model.SkillInstruction{}).
			Where("skill_id = ?", skill.ID).
			Select("coalesce(max(instruction), '')").
			Find(&text).
			Error
		if err != nil {
			return nil, translate(err)
		}

		results = append(results, SkillMatch{Skill: skill, Instruction: text})
	}

	return results, nil
}

// InstructionsExactMatch returns every (skill, instruction) pair whose
// lower-cased instruction equals lowerText. The caller lower-cases the query.
func (s *Skills) InstructionsExactMatch(lowerText string) ([]SkillMatch, error) {
	return s.matchQuery(s.DB.Where("lower(skill_instructions.instruction) = ?", lowerText))
}

// InstructionsContaining returns every pair whose instruction contains the
// substring, case-insensitively.
func (s *Skills) InstructionsContaining(substring string) ([]SkillMatch, error) {
	return s.matchQuery(s.DB.Where(
		"lower(skill_instructions.instruction) LIKE ? ESCAPE '\\'",
		"%"+escapeLike(substring)+"%",
	))
}

func (s *Skills) matchQuery(q *gorm.DB) ([]SkillMatch, error) {
	type row struct {
		model.Skill
		Instruction string
	}

	var rows []row
	err := q.
		Table("skill_instructions").
		Select("skills.*, skill_instructions.instruction").
		Joins("JOIN skills ON skills.id = skill_instructions.skill_id").
		Where("skills.deleted = ?", false).
		Order("skill_instructions.id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, translate(err)
	}

	results := make([]SkillMatch, 0, len(rows))
	for _, r := range rows {
		results = append(results, SkillMatch{Skill: r.Skill, Instruction: r.Instruction})
	}

	return results, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}

	return string(out)
}

func (s *Skills) CreateVote(v *model.SkillVote) error {
	return translate(s.DB.Create(v).Error)
}

func (s *Skills) CreateExecution(e *model.SkillExecution) error {
	return translate(s.DB.Create(e).Error)
}
