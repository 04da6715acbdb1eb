package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSkillName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "xmind", false},
		{"hyphenated", "commit-push", false},
		{"with digits", "xmind2", false},
		{"empty", "", true},
		{"uppercase", "XMind", true},
		{"leading digit", "2fast", true},
		{"leading hyphen", "-bad", true},
		{"trailing hyphen", "bad-", true},
		{"double hyphen", "bad--name", true},
		{"path separator", "a/b", true},
		{"spaces", "two words", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSkillName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetInitConfigFromFlags(t *testing.T) {
	cmd := initCmd

	assert.NoError(t, cmd.Flags().Set("registry", "/tmp/registry"))
	assert.NoError(t, cmd.Flags().Set("description", "does things"))
	assert.NoError(t, cmd.Flags().Set("scripts", "true"))
	t.Cleanup(func() {
		cmd.Flags().Set("registry", NewInitConfig().Registry)
		cmd.Flags().Set("description", "")
		cmd.Flags().Set("scripts", "false")
	})

	config := getInitConfigFromFlags(cmd)
	assert.Equal(t, "/tmp/registry", config.Registry)
	assert.Equal(t, "does things", config.Description)
	assert.True(t, config.Scripts)
}
