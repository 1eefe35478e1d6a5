package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// Extension is the only file type the store serves.
const Extension = ".wav"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Entry is a stored audio file.
type Entry struct {
	Name      string    `json:"filename"`
	Path      string    `json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps synthesized audio files on disk for a limited time. Expired or
// removed entries have their files deleted.
type Store struct {
	dir      string
	ttl      time.Duration
	cache    *ttlcache.Cache[string, Entry]
	now      func() time.Time
	running  atomic.Bool
	unsub    func()
	closeOne sync.Once
}

// NewStore creates dir if needed and returns a store whose entries live for ttl.
func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: failed to create output directory %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("audio: failed to resolve output directory %s: %w", dir, err)
	}

	cache := ttlcache.New[string, Entry](
		ttlcache.WithTTL[string, Entry](ttl),
		ttlcache.WithDisableTouchOnHit[string, Entry](),
	)
	// Eviction callbacks run on their own goroutines; unsub waits for them.
	unsub := cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, Entry]) {
		removeFile(item.Value().Path)
		slog.Debug("Audio file removed", "filename", item.Key(), "reason", reason)
	})

	return &Store{dir: abs, ttl: ttl, cache: cache, now: time.Now, unsub: unsub}, nil
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to remove audio file", "path", path, "error", err)
	}
}

// Start runs the expiry loop until Close is called.
func (s *Store) Start() {
	s.running.Store(true)
	s.cache.Start()
}

// Close stops the expiry loop and deletes every stored file. It returns once
// the files are gone.
func (s *Store) Close() {
	s.closeOne.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			s.cache.Stop()
		}
		s.cache.DeleteAll()
		s.unsub()
	})
}

// Dir returns the absolute output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Len returns the number of stored files.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Save writes r to a new file named after prefix and the current time.
func (s *Store) Save(r io.Reader, prefix string) (Entry, error) {
	now := s.now()
	name := fmt.Sprintf("%s-%s-%s%s",
		cleanPrefix(prefix),
		now.Format("20060102-150405"),
		uuid.NewString()[:8],
		Extension,
	)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Entry{}, fmt.Errorf("audio: failed to create %s: %w", name, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmpty
	}
	if err != nil {
		os.Remove(path)
		return Entry{}, fmt.Errorf("audio: failed to write %s: %w", name, err)
	}

	entry := Entry{Name: name, Path: path, Size: n, CreatedAt: now}
	s.cache.Set(name, entry, ttlcache.DefaultTTL)

	return entry, nil
}

// Path returns the file path of a stored entry. Only bare .wav file names
// known to the store are accepted.
func (s *Store) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	item := s.cache.Get(name)
	if item == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return item.Value().Path, nil
}

// Remove deletes a stored entry and its file.
func (s *Store) Remove(name string) {
	item := s.cache.Get(name)
	if item == nil {
		return
	}

	s.cache.Delete(name)
	removeFile(item.Value().Path)
}

// ValidName reports whether name is a bare .wav file name.
func ValidName(name string) bool {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}

	return strings.EqualFold(filepath.Ext(name), Extension)
}

func cleanPrefix(prefix string) string {
	prefix = strings.Trim(unsafeChars.ReplaceAllString(prefix, "_"), "_-")
	if prefix == "" {
		return "kasanoma"
	}

	return prefix
}
