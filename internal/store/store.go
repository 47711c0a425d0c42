package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists one installation's state, daily content buckets, and
// the append-only monthly event log under a single data directory:
//
//	<data>/state.json
//	<data>/daily/YYYY-MM-DD/<type>.json
//	<data>/logs/events_YYYY-MM.jsonl
//
// The design assumes a single logical writer; atomicity comes from the
// temp-write-then-rename discipline, not locking.
type Store struct {
	dataDir  string
	dailyDir string
	logsDir  string
}

// Open creates a Store rooted at dataDir and ensures its directory
// layout exists.
func Open(dataDir string) (*Store, error) {
	s := &Store{
		dataDir:  dataDir,
		dailyDir: filepath.Join(dataDir, "daily"),
		logsDir:  filepath.Join(dataDir, "logs"),
	}
	for _, d := range []string{s.dataDir, s.dailyDir, s.logsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", d, err)
		}
	}
	return s, nil
}

// DataDir returns the root data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) statePath() string {
	return filepath.Join(s.dataDir, "state.json")
}

// DefaultDataDir resolves the data directory in priority order:
// 1. LINGUA_STATE_DIR environment variable
// 2. $XDG_DATA_HOME/lingua
// 3. ~/.local/share/lingua
func DefaultDataDir() (string, error) {
	if p := os.Getenv("LINGUA_STATE_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "lingua"), nil
}

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename, so a crash mid-write can never leave a
// half-written file that a reader would accept.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
