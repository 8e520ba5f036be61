package service

import (
	"fmt"
	"strings"

	"webbu/skill-api/store"

	"go.uber.org/zap"
)

const (
	// maxWindowWords caps the sliding-window width for partial matching.
	maxWindowWords = 5

	// enoughMatches is the point where a stage stops looking for more.
	enoughMatches = 10
)

// SkillIndex is the slice of the skill repository the search engine reads.
// Both queries are implicitly filtered to non-deleted skills.
type SkillIndex interface {
	InstructionsExactMatch(lowerText string) ([]store.SkillMatch, error)
	InstructionsContaining(substring string) ([]store.SkillMatch, error)
}

// Search is the two-stage instruction matcher: exact equality first, then
// shrinking word groups of the query for substring matches.
type Search struct {
	Index SkillIndex
}

func NewSearch(index SkillIndex) *Search {
	return &Search{Index: index}
}

// Search returns (skill, matched instruction) pairs for the query, exact
// matches first, then partial matches in discovery order. The whole
// comparison is case-insensitive. Callers truncate for display.
//
// When the partial stage fails mid-scan, the exact-stage results are still
// returned alongside the error: the two stages are independent store calls,
// and the failing stage discards its own partials only.
func (s *Search) Search(query string) ([]store.SkillMatch, error) {
	query = strings.ToLower(query)

	exact, err := s.Index.InstructionsExactMatch(query)
	if err != nil {
		return nil, fmt.Errorf("search unavailable, %w", err)
	}

	// Exact matches are definitive once there are plenty of them. Repeated
	// identical instruction texts on one skill are not deduplicated here
	if len(exact) > enoughMatches {
		return exact, nil
	}

	results := append([]store.SkillMatch(nil), exact...)

	seen := make(map[uint]bool, len(results))
	for _, m := range results {
		seen[m.Skill.ID] = true
	}

	// Scan word groups of shrinking size k, k-1, ..., 1 (k = min(5, words)),
	// advancing the start by one word per step, for exactly k steps. Bigger
	// groups run first so longer phrase overlaps are discovered (and kept)
	// before shorter, vaguer ones
	var words []string
	if query != "" {
		words = strings.Split(query, " ")
	}

	k := min(maxWindowWords, len(words))

	for step := 0; step < k; step++ {
		sub := strings.Join(words[step:k], " ")

		found, err := s.Index.InstructionsContaining(sub)
		if err != nil {
			zap.L().Error("Partial search step failed", zap.Error(err), zap.String("window", sub))
			return exact, fmt.Errorf("search unavailable, %w", err)
		}

		for _, m := range found {
			if seen[m.Skill.ID] {
				continue
			}

			seen[m.Skill.ID] = true
			results = append(results, m)
		}

		if len(results) > enoughMatches {
			break
		}
	}

	return results, nil
}
