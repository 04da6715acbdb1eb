package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchFixture() map[string]*Skill {
	return map[string]*Skill{
		"xmind": {
			Name:        "xmind",
			Description: "Parse, create and update XMind mind-map files via Markdown",
		},
		"commit-push": {
			Name:        "commit-push",
			Description: "Create well-formed git commits and push to the remote",
		},
		"review": {
			Name:        "review",
			Description: "Review a pull request diff for common problems",
		},
	}
}

func TestMatch(t *testing.T) {
	results := Match(matchFixture(), []string{"convert", "XMind", "file"})

	require.Len(t, results, 1)
	assert.Equal(t, "xmind", results[0].Skill.Name)
	assert.Equal(t, 1, results[0].Score)
}

func TestMatchRanksByOverlap(t *testing.T) {
	results := Match(matchFixture(), []string{"git", "commit", "push"})

	require.NotEmpty(t, results)
	assert.Equal(t, "commit-push", results[0].Skill.Name)
	assert.Equal(t, 3, results[0].Score)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	results := Match(matchFixture(), []string{"MARKDOWN"})

	require.Len(t, results, 1)
	assert.Equal(t, "xmind", results[0].Skill.Name)
}

func TestMatchNameCountsAsTrigger(t *testing.T) {
	results := Match(matchFixture(), []string{"review"})

	require.NotEmpty(t, results)
	assert.Equal(t, "review", results[0].Skill.Name)
}

func TestMatchNoOverlap(t *testing.T) {
	assert.Empty(t, Match(matchFixture(), []string{"kubernetes"}))
	assert.Empty(t, Match(matchFixture(), nil))
}

func TestMatchTiesBreakByName(t *testing.T) {
	skills := map[string]*Skill{
		"b-skill": {Name: "b-skill", Description: "shared trigger word"},
		"a-skill": {Name: "a-skill", Description: "shared trigger word"},
	}

	results := Match(skills, []string{"shared"})
	require.Len(t, results, 2)
	assert.Equal(t, "a-skill", results[0].Skill.Name)
	assert.Equal(t, "b-skill", results[1].Skill.Name)
}
