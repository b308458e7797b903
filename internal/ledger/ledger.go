// Package ledger records what the generators wrote, so later runs can tell
// user-edited files from generated ones before overwriting them. Records live
// under the user cache directory keyed by project root; losing the ledger
// only loses the warnings.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"etch/internal/fsops"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш содержимого
type Digest [32]byte

// HashContent digests generated file content.
func HashContent(data []byte) Digest {
	return sha256.Sum256(data)
}

// KeyFor derives the ledger key for a project root path.
func KeyFor(projectRoot string) Digest {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	return sha256.Sum256([]byte(filepath.ToSlash(filepath.Clean(abs))))
}

// Entry is one generated file.
type Entry struct {
	Path   string // project-relative, slash-separated
	Hash   Digest // content digest right after generation
	Source string // "boilerplate" or "generator:<name>"
}

// Payload stores the generated-file records for one project.
type Payload struct {
	Schema  uint16
	Project string
	Entries []Entry
}

// Find returns the entry for a project-relative path.
func (p *Payload) Find(path string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Upsert records an entry, replacing a previous record for the same path.
func (p *Payload) Upsert(e Entry) {
	for i := range p.Entries {
		if p.Entries[i].Path == e.Path {
			p.Entries[i] = e
			return
		}
	}
	p.Entries = append(p.Entries, e)
}

// Ledger хранит записи генерации по проектам на диске.
// Thread-safe for concurrent access.
type Ledger struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the ledger at the standard cache location.
func Open(app string) (*Ledger, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Ledger{dir: dir}, nil
}

func (l *Ledger) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "projects" для удобства ручной очистки.
	return filepath.Join(l.dir, "projects", hexKey+".mp")
}

// Put serializes and writes a payload for the given project key.
func (l *Ledger) Put(key Digest, payload *Payload) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	payload.Schema = schemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	return fsops.AtomicWrite(l.pathFor(key), data, 0o644)
}

// Get reads the payload for the given project key. A missing record or a
// schema mismatch reads as a clean miss, not an error.
func (l *Ledger) Get(key Digest, out *Payload) (bool, error) {
	if l == nil {
		return false, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	data, err := os.ReadFile(l.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		*out = Payload{}
		return false, nil
	}
	return true, nil
}

// DropAll invalidates every record, useful after format changes.
func (l *Ledger) DropAll() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return fsops.RemoveTree(l.dir)
}
