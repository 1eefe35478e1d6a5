package voice

import "fmt"

// Selection is a resolved (language, voice) pair. A non-nil Voice always
// belongs to Language in the catalog that produced the selection. The zero
// value means nothing is selected.
type Selection struct {
	Language string `json:"language,omitempty"`
	Voice    *Voice `json:"voice,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.Language == "" && s.Voice == nil
}

// VoicePath returns the model path of the selected voice, or "".
func (s Selection) VoicePath() string {
	if s.Voice == nil {
		return ""
	}

	return s.Voice.Path
}

// VoiceName returns the name of the selected voice, or "".
func (s Selection) VoiceName() string {
	if s.Voice == nil {
		return ""
	}

	return s.Voice.Name
}

// DefaultSelection picks the startup selection: the preferred language when
// catalogued, else a language named "English", else the first language. The
// voice is the first voice of that language. An empty catalog yields the zero
// Selection.
func (c *Catalog) DefaultSelection(preferred string) Selection {
	if c == nil || len(c.keys) == 0 {
		return Selection{}
	}

	key := c.keys[0]
	switch {
	case preferred != "" && len(c.voices[preferred]) > 0:
		key = preferred
	case len(c.voices[ScriptEnglish]) > 0:
		key = ScriptEnglish
	}

	return c.selectionFor(key)
}

// SelectLanguage selects a language and its first voice.
func (c *Catalog) SelectLanguage(name string) (Selection, error) {
	if !c.Has(name) {
		return Selection{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, name)
	}

	return c.selectionFor(name), nil
}

// SelectVoice selects the voice whose name matches exactly. With a language
// hint only that language is searched; without one, languages are searched in
// catalog order and the first match wins, since voice names are only unique
// within a language.
func (c *Catalog) SelectVoice(name, languageHint string) (Selection, error) {
	if c == nil {
		return Selection{}, fmt.Errorf("%w: %q", ErrVoiceNotFound, name)
	}

	keys := c.keys
	if languageHint != "" {
		if !c.Has(languageHint) {
			return Selection{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, languageHint)
		}
		keys = []string{languageHint}
	}

	for _, key := range keys {
		for i := range c.voices[key] {
			if c.voices[key][i].Name == name {
				v := c.voices[key][i]
				return Selection{Language: key, Voice: &v}, nil
			}
		}
	}

	return Selection{}, fmt.Errorf("%w: %q", ErrVoiceNotFound, name)
}

// Contains reports whether sel is consistent with this catalog.
func (c *Catalog) Contains(sel Selection) bool {
	if sel.IsZero() {
		return true
	}
	if !c.Has(sel.Language) {
		return false
	}
	if sel.Voice == nil {
		return true
	}

	for _, v := range c.voices[sel.Language] {
		if v == *sel.Voice {
			return true
		}
	}

	return false
}

// selectionFor selects key and its first voice. A language without voices
// leaves the voice unset.
func (c *Catalog) selectionFor(key string) Selection {
	sel := Selection{Language: key}
	if voices := c.voices[key]; len(voices) > 0 {
		v := voices[0]
		sel.Voice = &v
	}

	return sel
}
