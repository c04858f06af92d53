package ai

import (
	"testing"

	"alchemy-backend/domain/element"
	apperrors "alchemy-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetails_PlainJSON(t *testing.T) {
	details, err := parseDetails(`{"name": "Steam", "description": "Hot vapor rising from boiling water."}`)

	require.NoError(t, err)
	assert.Equal(t, "Steam", details.Name)
	assert.Equal(t, "Hot vapor rising from boiling water.", details.Description)
}

func TestParseDetails_FencedJSON(t *testing.T) {
	raw := "```json\n{\"name\": \"Steam\", \"description\": \"Hot vapor.\"}\n```"

	details, err := parseDetails(raw)

	require.NoError(t, err)
	assert.Equal(t, "Steam", details.Name)
}

func TestParseDetails_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the element:\n{\"name\": \"Mud\", \"description\": \"Wet earth.\"}\nEnjoy."

	details, err := parseDetails(raw)

	require.NoError(t, err)
	assert.Equal(t, "Mud", details.Name)
}

func TestParseDetails_TrimsFields(t *testing.T) {
	details, err := parseDetails(`{"name": "  Steam ", "description": " Hot vapor. "}`)

	require.NoError(t, err)
	assert.Equal(t, "Steam", details.Name)
	assert.Equal(t, "Hot vapor.", details.Description)
}

func TestParseDetails_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "steam is the answer"},
		{"missing name", `{"description": "Hot vapor."}`},
		{"missing description", `{"name": "Steam"}`},
		{"empty name", `{"name": "   ", "description": "Hot vapor."}`},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDetails(tt.raw)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedGeneration))
		})
	}
}

func TestDetailsPrompt_CarriesBothParents(t *testing.T) {
	water := &element.Element{Name: "Water", Description: "A clear liquid."}
	fire := &element.Element{Name: "Fire", Description: "Burning heat."}

	prompt := detailsPrompt(water, fire)

	assert.Contains(t, prompt, "Water")
	assert.Contains(t, prompt, "A clear liquid.")
	assert.Contains(t, prompt, "Fire")
	assert.Contains(t, prompt, "Burning heat.")
}

func TestIconPrompt_NamesElement(t *testing.T) {
	prompt := iconPrompt("Steam", "Hot vapor.")

	assert.Contains(t, prompt, "Steam")
	assert.Contains(t, prompt, "icon")
}
