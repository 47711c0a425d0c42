package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/lingua/internal/state"
)

// LoadState reads the persisted UserState. A missing file yields a fresh
// default state; an unparseable file yields CorruptStateError.
func (s *Store) LoadState() (*state.UserState, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return state.Default(), nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	// Unmarshal over defaults so fields added since the file was written
	// keep their documented default values.
	st := state.Default()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, &CorruptStateError{Path: s.statePath(), Err: err}
	}
	return st, nil
}

// SaveState persists the full state in one atomic operation.
func (s *Store) SaveState(st *state.UserState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := writeFileAtomic(s.statePath(), data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
