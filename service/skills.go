package service

import (
	"fmt"

	"webbu/skill-api/model"
	"webbu/skill-api/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	visibleIDLength  = 14
	maxEventURLChars = 300 // db column limit
)

// SkillStore is the full skill-repository surface the publishing and event
// paths use. *store.Skills satisfies it (and SkillIndex); tests use fakes.
type SkillStore interface {
	SkillIndex
	Create(skill *model.Skill, instructions []string) error
	Update(skill *model.Skill, steps string, hosts model.StringSlice, instructions []string) error
	Delete(skill *model.Skill) error
	FindByVisibleID(visibleID string) (*model.Skill, error)
	FindWithInstructions(visibleID string) (*model.Skill, []string, error)
	ListByAuthor(authorID uint) ([]store.SkillMatch, error)
	CreateVote(v *model.SkillVote) error
	CreateExecution(e *model.SkillExecution) error
}

// Skills handles publishing, editing and the per-skill event records.
type Skills struct {
	Store SkillStore
}

func NewSkills(s SkillStore) *Skills {
	return &Skills{Store: s}
}

// Publish creates a new skill under a fresh "@"-prefixed visible id,
// together with its instruction set.
func (s *Skills) Publish(authorID uint, steps string, instructions []string, hosts model.StringSlice) (*model.Skill, error) {
	handle, err := gonanoid.New(visibleIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate visible id, %w", err)
	}

	skill := &model.Skill{
		VisibleID: "@" + handle,
		Steps:     steps,
		AuthorID:  authorID,
		Hosts:     hosts,
	}

	if err := s.Store.Create(skill, instructions); err != nil {
		return nil, fmt.Errorf("failed to save skill, %w", err)
	}

	return skill, nil
}

// Update edits steps/hosts and replaces the instruction set wholesale. Only
// the author may edit.
func (s *Skills) Update(visibleID string, authorID uint, steps string, instructions []string, hosts model.StringSlice) (*model.Skill, error) {
	skill, err := s.Store.FindByVisibleID(visibleID)
	if err != nil {
		return nil, err
	}

	if skill.AuthorID != authorID {
		return nil, ErrNotAllowed
	}

	if err := s.Store.Update(skill, steps, hosts, instructions); err != nil {
		return nil, fmt.Errorf("failed to update skill, %w", err)
	}

	skill.Steps = steps
	skill.Hosts = hosts
	return skill, nil
}

// Delete marks the skill deleted. The row stays so votes and execution
// records keep a valid reference.
func (s *Skills) Delete(visibleID string, authorID uint) error {
	skill, err := s.Store.FindByVisibleID(visibleID)
	if err != nil {
		return err
	}

	if skill.AuthorID != authorID {
		return ErrNotAllowed
	}

	return s.Store.Delete(skill)
}

// Get returns a skill with all its trigger phrases.
func (s *Skills) Get(visibleID string) (*model.Skill, []string, error) {
	return s.Store.FindWithInstructions(visibleID)
}

// UserSkills lists the author's skills with one representative phrase each.
func (s *Skills) UserSkills(authorID uint) ([]store.SkillMatch, error) {
	return s.Store.ListByAuthor(authorID)
}

// Vote records a +1/-1 for a skill from a user or guest.
func (s *Skills) Vote(visibleID string, vote int, userID *uint, guestID, currentURL string) error {
	skill, err := s.Store.FindByVisibleID(visibleID)
	if err != nil {
		return err
	}

	return s.Store.CreateVote(&model.SkillVote{
		SkillID:    skill.ID,
		UserID:     userID,
		GuestID:    guestID,
		Vote:       vote,
		CurrentURL: truncate(currentURL, maxEventURLChars),
	})
}

// RecordExecution records one run of a skill.
func (s *Skills) RecordExecution(visibleID string, userID *uint, guestID, trigger, currentURL string) error {
	skill, err := s.Store.FindByVisibleID(visibleID)
	if err != nil {
		return err
	}

	return s.Store.CreateExecution(&model.SkillExecution{
		SkillID:       skill.ID,
		UserID:        userID,
		GuestID:       guestID,
		TriggerMethod: trigger,
		CurrentURL:    truncate(currentURL, maxEventURLChars),
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
