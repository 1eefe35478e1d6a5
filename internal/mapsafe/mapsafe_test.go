package mapsafe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"speaker_id":   float64(3),
		"length_scale": 1,
		"noise_scale":  json.Number("0.667"),
		"noise_w":      "0.8",
		"name":         "amy",
		"enabled":      true,
		"tags":         []string{"a"},
		"nothing":      nil,
	}

	assert.Equal(t, 3, Get(m, "speaker_id", -1))
	assert.Equal(t, 1.0, Get(m, "length_scale", 0.0))
	assert.Equal(t, 0.667, Get(m, "noise_scale", 0.0))
	assert.Equal(t, 0.8, Get(m, "noise_w", 0.0))
	assert.Equal(t, "amy", Get(m, "name", ""))
	assert.True(t, Get(m, "enabled", false))
	assert.Equal(t, []string{"a"}, Get[[]string](m, "tags", nil))

	assert.Equal(t, 7, Get(m, "missing", 7))
	assert.Equal(t, 7, Get(m, "name", 7))
	assert.Equal(t, "x", Get(m, "nothing", "x"))
	assert.Equal(t, 0.5, Get[float64](nil, "noise_w", 0.5))
}

func TestLookup(t *testing.T) {
	m := map[string]any{"speaker_id": 0.0, "bad": "fast"}

	v, ok := Lookup(m, "speaker_id", -1)
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = Lookup(m, "bad", 0.0)
	assert.False(t, ok)

	_, ok = Lookup(m, "missing", 0.0)
	assert.False(t, ok)
}
