package skills

import (
	"sort"
	"strings"
)

// MatchResult pairs a skill with its trigger-match score.
type MatchResult struct {
	Skill *Skill
	Score int
}

// Match ranks skills by how many distinct query words occur in their
// description, the same signal a host uses to pick a skill for a task.
// Matching is case-insensitive on word boundaries; skills with no
// overlapping words are omitted. Results are ordered by score, then name.
func Match(skills map[string]*Skill, query []string) []MatchResult {
	words := make(map[string]struct{})
	for _, q := range query {
		for _, w := range tokenize(q) {
			words[w] = struct{}{}
		}
	}
	if len(words) == 0 {
		return nil
	}

	var results []MatchResult
	for _, skill := range skills {
		haystack := make(map[string]struct{})
		for _, w := range tokenize(skill.Description) {
			haystack[w] = struct{}{}
		}
		// The skill name counts as a trigger word too
		for _, w := range strings.Split(strings.ToLower(skill.Name), "-") {
			haystack[w] = struct{}{}
		}

		score := 0
		for w := range words {
			if _, ok := haystack[w]; ok {
				score++
			}
		}
		if score > 0 {
			results = append(results, MatchResult{Skill: skill, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Skill.Name < results[j].Skill.Name
	})
	return results
}

// tokenize lowercases text and splits it into alphanumeric words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}
