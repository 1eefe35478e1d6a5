package voice

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Catalog is the read-only inventory of languages and their voices. It is
// produced by Build and never mutated; a rescan builds a new Catalog.
type Catalog struct {
	root      string
	keys      []string
	languages map[string]Language
	voices    map[string][]Voice
}

// Build scans root and returns the catalog of languages and voices found on
// disk. Files are recognised by the ext suffix (case-sensitive); an empty ext
// means DefaultExtension. A missing root yields an empty catalog.
func Build(root, ext string) (*Catalog, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	c := &Catalog{
		languages: make(map[string]Language),
		voices:    make(map[string][]Voice),
	}

	if root == "" {
		return c, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("voice: failed to resolve catalog root %s: %w", root, err)
	}
	c.root = abs

	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("voice: failed to read catalog root %s: %w", abs, err)
	}

	for _, entry := range entries {
		dir := filepath.Join(abs, entry.Name())
		if !isDir(dir, entry) {
			continue
		}

		files, err := modelFiles(dir, ext)
		if err != nil {
			slog.Warn("Skipping unreadable language directory", "path", dir, "error", err)
			continue
		}

		c.add(entry.Name(), DisplayName(entry.Name()), dir, files, ext)
	}

	if _, exists := c.languages[DefaultLanguageKey]; !exists {
		files, err := modelFiles(abs, ext)
		if err != nil {
			return nil, err
		}

		c.add(DefaultLanguageKey, DefaultLanguageKey, abs, files, ext)
	}

	return c, nil
}

// add registers a language and its voices. Languages without voices are
// skipped so that every catalogued language has at least one voice.
func (c *Catalog) add(key, displayName, dir string, files []string, ext string) {
	if len(files) == 0 {
		return
	}

	voices := make([]Voice, 0, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(file, ext)
		voices = append(voices, Voice{
			Name:        name,
			Path:        filepath.Join(dir, file),
			DisplayName: DisplayName(name),
			Language:    key,
		})
	}

	c.keys = append(c.keys, key)
	c.languages[key] = Language{
		FolderName:  key,
		DisplayName: displayName,
		Path:        dir,
		VoiceCount:  len(voices),
	}
	c.voices[key] = voices
}

// Root returns the absolute directory the catalog was built from.
func (c *Catalog) Root() string {
	return c.root
}

// Len returns the number of catalogued languages.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// VoiceCount returns the number of voices across all languages.
func (c *Catalog) VoiceCount() int {
	n := 0
	for _, key := range c.keys {
		n += len(c.voices[key])
	}

	return n
}

// Keys returns the language keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)

	return keys
}

// Has reports whether key is a catalogued language.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}

	_, ok := c.languages[key]
	return ok
}

// Language returns the language with the given key.
func (c *Catalog) Language(key string) (Language, bool) {
	lang, ok := c.languages[key]
	return lang, ok
}

// Languages returns all languages in catalog order.
func (c *Catalog) Languages() []Language {
	languages := make([]Language, 0, len(c.keys))
	for _, key := range c.keys {
		languages = append(languages, c.languages[key])
	}

	return languages
}

// Voices returns the voices of a language in catalog order, or nil when the
// language is not catalogued.
func (c *Catalog) Voices(key string) []Voice {
	voices, ok := c.voices[key]
	if !ok {
		return nil
	}

	out := make([]Voice, len(voices))
	copy(out, voices)

	return out
}

// AllVoices returns every voice, grouped by language in catalog order.
func (c *Catalog) AllVoices() []Voice {
	var out []Voice
	for _, key := range c.keys {
		out = append(out, c.voices[key]...)
	}

	return out
}

// modelFiles lists the names of non-directory entries in dir ending in ext,
// sorted lexically.
func modelFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("voice: failed to read language directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		// Hidden files are skipped, as shell globs do.
		if !strings.HasSuffix(entry.Name(), ext) || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isDir(filepath.Join(dir, entry.Name()), entry) {
			continue
		}

		files = append(files, entry.Name())
	}

	return files, nil
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}

	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
