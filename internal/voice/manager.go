package voice

import (
	"log/slog"
	"sync"
)

// Options configures where a Manager looks for voices.
type Options struct {
	Root            string
	Extension       string
	DefaultLanguage string
}

// ResolveRequest carries the per-request inputs of a selection.
type ResolveRequest struct {
	Text       string
	Language   string
	Voice      string
	AutoDetect bool
}

// Manager owns the live catalog and the process-wide current selection.
// The catalog pointer and the selection are always swapped together under
// one lock, so readers never see a selection from another catalog.
type Manager struct {
	opts     Options
	catalog  *Catalog
	current  Selection
	onRescan []func(*Catalog)
	mu       sync.RWMutex
	// rescanMu serializes Rescan so a scan of an old root cannot land after
	// Reconfigure.
	rescanMu sync.Mutex
}

// NewManager creates a manager with an empty catalog. Call Rescan to load
// voices from disk.
func NewManager(opts Options) *Manager {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}

	return &Manager{
		opts:    opts,
		catalog: &Catalog{languages: map[string]Language{}, voices: map[string][]Voice{}},
	}
}

// OnRescan registers fn to be called with every newly built catalog.
func (m *Manager) OnRescan(fn func(*Catalog)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onRescan = append(m.onRescan, fn)
}

// Options returns the current manager options.
func (m *Manager) Options() Options {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.opts
}

// Rescan rebuilds the catalog from disk. The current selection survives when
// the new catalog still contains it; otherwise the default selection is
// resolved again.
func (m *Manager) Rescan() error {
	m.rescanMu.Lock()
	defer m.rescanMu.Unlock()

	return m.rescan()
}

func (m *Manager) rescan() error {
	opts := m.Options()

	catalog, err := Build(opts.Root, opts.Extension)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.catalog = catalog
	if m.current.IsZero() || !catalog.Contains(m.current) {
		m.current = catalog.DefaultSelection(opts.DefaultLanguage)
	}
	current := m.current
	hooks := append([]func(*Catalog){}, m.onRescan...)
	m.mu.Unlock()

	if catalog.Len() == 0 {
		slog.Warn("No voice models found", "path", opts.Root, "extension", opts.Extension)
	} else {
		slog.Info("Voice catalog built",
			"path", catalog.Root(),
			"languages", catalog.Len(),
			"voices", catalog.VoiceCount(),
			"language", current.Language,
			"voice", current.VoiceName(),
		)
	}

	for _, fn := range hooks {
		fn(catalog)
	}

	return nil
}

// Reconfigure replaces the manager options and rescans. The current selection
// is reset so the new default language takes effect.
func (m *Manager) Reconfigure(opts Options) error {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}

	m.rescanMu.Lock()
	defer m.rescanMu.Unlock()

	m.mu.Lock()
	m.opts = opts
	m.current = Selection{}
	m.mu.Unlock()

	return m.rescan()
}

// Catalog returns the live catalog.
func (m *Manager) Catalog() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.catalog
}

// Current returns the current selection.
func (m *Manager) Current() Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// Snapshot returns the live catalog together with the current selection.
func (m *Manager) Snapshot() (*Catalog, Selection) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.catalog, m.current
}

// ResolveDefault resets the current selection to the catalog default and
// returns it. The zero Selection is returned for an empty catalog.
func (m *Manager) ResolveDefault() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = m.catalog.DefaultSelection(m.opts.DefaultLanguage)
	return m.current
}

// SetLanguage makes name the current language with its first voice. On error
// the current selection is left untouched.
func (m *Manager) SetLanguage(name string) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sel, err := m.catalog.SelectLanguage(name)
	if err != nil {
		return m.current, err
	}

	m.current = sel
	return sel, nil
}

// SetVoice makes the named voice current, searching only languageHint when it
// is set. On error the current selection is left untouched.
func (m *Manager) SetVoice(name, languageHint string) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sel, err := m.catalog.SelectVoice(name, languageHint)
	if err != nil {
		return m.current, err
	}

	m.current = sel
	return sel, nil
}

// Resolve computes the selection for a single request without changing the
// current selection. An explicit voice or language wins and disables
// detection; otherwise, with AutoDetect, the text's detected language
// replaces the current one when it is catalogued.
func (m *Manager) Resolve(req ResolveRequest) (Selection, error) {
	m.mu.RLock()
	catalog, current, defaultLanguage := m.catalog, m.current, m.opts.DefaultLanguage
	m.mu.RUnlock()

	if catalog.Len() == 0 {
		return Selection{}, ErrEmptyCatalog
	}

	sel := current
	switch {
	case req.Voice != "":
		s, err := catalog.SelectVoice(req.Voice, req.Language)
		if err != nil {
			return Selection{}, err
		}
		sel = s

	case req.Language != "":
		s, err := catalog.SelectLanguage(req.Language)
		if err != nil {
			return Selection{}, err
		}
		sel = s

	case req.AutoDetect:
		fallback := current.Language
		if fallback == "" {
			fallback = defaultLanguage
		}

		detected := Detect(req.Text, catalog, fallback)
		if detected != current.Language && catalog.Has(detected) {
			sel, _ = catalog.SelectLanguage(detected)
			slog.Debug("Language detected", "language", detected, "previous", current.Language)
		}
	}

	if sel.Voice == nil {
		return Selection{}, ErrNoVoiceSelected
	}

	return sel, nil
}

// Commit stores sel as the current selection if it belongs to the live
// catalog. It reports whether the selection was stored.
func (m *Manager) Commit(sel Selection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sel.Voice == nil || !m.catalog.Contains(sel) {
		return false
	}

	m.current = sel
	return true
}
