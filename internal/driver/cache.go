package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tinge/internal/colorize"
)

// Current schema version - increment when CheckpointPayload changes
const stateCacheSchemaVersion uint16 = 1

// CheckpointInterval is the line stride between stored states.
const CheckpointInterval uint32 = 64

// StateCache persists line-state checkpoints per content hash so a
// host can resume colorizing near an edited line instead of rescanning
// the whole buffer. Thread-safe for concurrent access.
type StateCache struct {
	mu  sync.RWMutex
	dir string
}

// CheckpointPayload is the on-disk record: the packed carried state
// after every CheckpointInterval-th line.
type CheckpointPayload struct {
	Schema   uint16
	Interval uint32
	States   []uint32 // packed; States[k] is the state after line (k+1)*Interval
}

// OpenStateCache initializes a cache under the standard location.
func OpenStateCache(app string) (*StateCache, error) {
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
	return &StateCache{dir: dir}, nil
}

// OpenStateCacheAt initializes a cache rooted at an explicit directory.
func OpenStateCacheAt(dir string) (*StateCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &StateCache{dir: dir}, nil
}

func (c *StateCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "states", hexKey+".mp")
}

// Put stores checkpoints distilled from the full per-line state slice.
func (c *StateCache) Put(key [32]byte, states []colorize.State) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := &CheckpointPayload{
		Schema:   stateCacheSchemaVersion,
		Interval: CheckpointInterval,
	}
	for i := int(CheckpointInterval) - 1; i < len(states); i += int(CheckpointInterval) {
		payload.States = append(payload.States, states[i].Pack())
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get loads the checkpoint payload for a content hash. The boolean is
// false on a clean miss (absent or stale schema).
func (c *StateCache) Get(key [32]byte) (*CheckpointPayload, bool, error) {
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
	defer func() {
		_ = f.Close()
	}()

	var payload CheckpointPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode state cache: %w", err)
	}
	if payload.Schema != stateCacheSchemaVersion || payload.Interval == 0 {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *StateCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "states"))
}

// ResumePoint returns the line to restart scanning from and the state
// to feed it, for an edit at the given 1-based line. With no usable
// checkpoint it falls back to line 1 and the zero state.
func (p *CheckpointPayload) ResumePoint(editedLine uint32) (start uint32, st colorize.State) {
	if p == nil || editedLine <= 1 {
		return 1, colorize.State{}
	}
	// nearest checkpoint at or before editedLine-1
	k := (editedLine - 1) / p.Interval
	if k == 0 {
		return 1, colorize.State{}
	}
	if n := uint32(len(p.States)); k > n {
		k = n
	}
	return k*p.Interval + 1, colorize.Unpack(p.States[k-1])
}
