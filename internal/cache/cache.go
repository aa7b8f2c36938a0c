// Package cache stores compiled SPIR-V word streams on disk, keyed by a
// hash of the input program and the options that shaped the output.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
)

// schemaVersion is bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

// Key identifies one cached compilation.
type Key [sha256.Size]byte

// String returns the hex form of the key.
func (k Key) String() string { return hex.EncodeToString(k[:]) }

// NewKey hashes the program source together with an options fingerprint.
// The source is NFC-normalized first so that equivalent encodings of the
// same text share an entry.
func NewKey(source []byte, options string) Key {
	h := sha256.New()
	h.Write(norm.NFC.Bytes(source))
	h.Write([]byte{0})
	h.Write([]byte(norm.NFC.String(options)))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Entry is one cached compilation result.
type Entry struct {
	Schema uint16
	// Session is the id of the invocation that produced the entry.
	Session     string
	Words       []uint32
	Diagnostics []Diagnostic
}

// Diagnostic is the serialized form of a diag.Diagnostic.
type Diagnostic struct {
	Kind    uint8
	Message string
	Line    int
	Column  int
}

// NewEntry builds an entry for words and the diagnostics reported while
// producing them.
func NewEntry(session uuid.UUID, words []uint32, items []diag.Diagnostic) *Entry {
	e := &Entry{
		Schema:  schemaVersion,
		Session: session.String(),
		Words:   words,
	}
	for _, d := range items {
		e.Diagnostics = append(e.Diagnostics, Diagnostic{
			Kind:    uint8(d.Kind),
			Message: d.Message,
			Line:    d.Loc.Line,
			Column:  d.Loc.Column,
		})
	}
	return e
}

// Items converts the stored diagnostics back.
func (e *Entry) Items() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		out = append(out, diag.Diagnostic{
			Kind:    diag.Kind(d.Kind),
			Message: d.Message,
			Loc:     ast.Loc{Line: d.Line, Column: d.Column},
		})
	}
	return out
}

// Cache is a directory of msgpack entries. A nil *Cache is a valid,
// always-missing cache. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it when needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// OpenDefault opens the cache under the user cache directory
// ($XDG_CACHE_HOME or ~/.cache).
func OpenDefault(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "spv", hexKey[:2], hexKey+".mp")
}

// Put writes the entry, replacing any older one atomically.
func (c *Cache) Put(key Key, e *Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(e); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the entry for key. A missing entry or one written with an
// older schema reports false without error.
func (c *Cache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if e.Schema != schemaVersion {
		return nil, false, nil
	}
	return &e, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "spv"))
}
