package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"en-us", "English (US)"},
		{"EN-gb", "English (GB)"},
		{"pt-br", "Portuguese (BR)"},
		{"fr", "French"},
		{"FR", "French"},
		{"tw", "Twi"},
		{"my_custom_lang", "My Custom Lang"},
		{"English", "English"},
		{"Default", "Default"},
		{"xx-yy", "Xx Yy"},
		{"en-us-extra", "En Us Extra"},
		{"en-", "En "},
		{"en_US-lessac-medium", "En Us Lessac Medium"},
		{"ENGLISH", "English"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.raw))
		})
	}
}

func TestLanguageTableSize(t *testing.T) {
	assert.GreaterOrEqual(t, len(languageNames), 55)
}
