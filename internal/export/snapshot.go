package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
)

// currentSchemaVersion is the snapshot schema version.
const currentSchemaVersion = "1"

// Snapshot is the on-disk form of an exported history.
type Snapshot struct {
	Version   string    `json:"version"`
	Generated time.Time `json:"generated"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	SHA256    string    `json:"sha256"`
	Facts     []string  `json:"facts"`
}

// NewSnapshot builds a snapshot of facts fetched from source.
func NewSnapshot(source string, facts []string) *Snapshot {
	out := make([]string, len(facts))
	copy(out, facts)
	return &Snapshot{
		Version:   currentSchemaVersion,
		Generated: time.Now().UTC(),
		Source:    source,
		Count:     len(out),
		SHA256:    computeSHA256(out),
		Facts:     out,
	}
}

// Writer writes snapshots to disk.
type Writer struct {
	fs      FileSystem
	newLock func(path string) Locker
}

// NewWriter creates a Writer backed by the OS file system and flock.
func NewWriter() *Writer {
	return &Writer{
		fs:      OSFileSystem{},
		newLock: func(path string) Locker { return NewFileLock(path) },
	}
}

// Write exports facts to path. The file is replaced atomically while holding
// an exclusive lock, so concurrent exports to the same path never interleave.
func (w *Writer) Write(ctx context.Context, path, source string, facts []string) (*Snapshot, error) {
	if len(facts) == 0 {
		return nil, &catfacterrors.CatfactError{
			Op:     "write snapshot",
			Target: path,
			Err:    catfacterrors.ErrEmptyHistory,
		}
	}

	snapshot := NewSnapshot(source, facts)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, &catfacterrors.CatfactError{
			Op:  "marshal snapshot",
			Err: err,
		}
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return nil, &catfacterrors.CatfactError{
				Op:     "create directory",
				Target: dir,
				Err:    err,
			}
		}
	}

	lock := w.newLock(path)
	if err := lock.Lock(ctx); err != nil {
		return nil, &catfacterrors.CatfactError{
			Op:     "lock snapshot",
			Target: path,
			Err:    err,
		}
	}
	defer func() { _ = lock.Unlock() }()

	tempPath := path + ".tmp"
	if err := w.fs.WriteFile(tempPath, data, 0644); err != nil {
		return nil, &catfacterrors.CatfactError{
			Op:     "write temp snapshot",
			Target: tempPath,
			Err:    err,
		}
	}

	if err := w.fs.Rename(tempPath, path); err != nil {
		_ = w.fs.Remove(tempPath)
		return nil, &catfacterrors.CatfactError{
			Op:     "rename snapshot",
			Target: path,
			Err:    err,
		}
	}

	return snapshot, nil
}

// computeSHA256 hashes the facts joined by newlines.
func computeSHA256(facts []string) string {
	hash := sha256.Sum256([]byte(strings.Join(facts, "\n")))
	return hex.EncodeToString(hash[:])
}
