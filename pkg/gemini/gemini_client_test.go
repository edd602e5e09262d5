package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVector(t *testing.T) {
	v, err := ParseVector(`{"protein": 12.5, "fat": 3, "carbs": 40, "fibers": 2}`)
	require.NoError(t, err)
	assert.Equal(t, 12.5, v.Protein)
	assert.Equal(t, 3.0, v.Fat)
	assert.Equal(t, 40.0, v.Carbs)
	assert.Equal(t, 2.0, v.Fibers)
	assert.Zero(t, v.Sugar)
}

func TestParseVectorToleratesSurroundingText(t *testing.T) {
	v, err := ParseVector("Here is the estimate:\n```json\n{\"protein\": 8, \"fat\": 1}\n```\nHope that helps!")
	require.NoError(t, err)
	assert.Equal(t, 8.0, v.Protein)
}

func TestParseVectorStringNumbers(t *testing.T) {
	v, err := ParseVector(`{"protein": "15", "fat": "2.5"}`)
	require.NoError(t, err)
	assert.Equal(t, 15.0, v.Protein)
	assert.Equal(t, 2.5, v.Fat)
}

func TestParseVectorIgnoresUnknownFields(t *testing.T) {
	v, err := ParseVector(`{"protein": 10, "calories": 500, "vitamin_c": 30}`)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v.Protein)
}

func TestParseVectorRejectsNegative(t *testing.T) {
	_, err := ParseVector(`{"protein": 10, "fat": -3}`)
	assert.Error(t, err)
}

func TestParseVectorRejectsMalformed(t *testing.T) {
	for _, response := range []string{
		"",
		"I could not determine the nutrients for this item.",
		`{"protein": true}`,
		`{"calories": 500}`,
		`[1, 2, 3]`,
	} {
		_, err := ParseVector(response)
		assert.Error(t, err, response)
	}
}
