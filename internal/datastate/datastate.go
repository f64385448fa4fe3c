// Package datastate tracks content hashes of the source data files so a
// conversion run can report which upstream exports changed since the last one.
package datastate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is swappable so tests get deterministic LastCheck values.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// SourceState is the recorded state of one tracked file.
type SourceState struct {
	Exists      bool   `json:"exists"`
	ContentHash string `json:"content_hash,omitempty"`
	File        string `json:"file,omitempty"`
}

// Change describes one detected difference against the previous state.
type Change struct {
	Source  string `json:"source"`
	Details string `json:"details"`
}

// State is the persisted data-state file.
type State struct {
	LastCheck time.Time              `json:"last_check"`
	Sources   map[string]SourceState `json:"sources"`
	Changes   []Change               `json:"changes,omitempty"`
}

// Load reads a previously saved state. A missing file yields an empty state,
// not an error: the first run has nothing to compare against.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read data state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parse data state %s: %w", path, err)
	}
	return s, nil
}

// Save writes the state as indented JSON, creating parent directories.
func (s State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// Detect hashes the tracked files (source name → path) and compares them with
// the previous state. A change is reported only when the previous run recorded
// a hash and the content now differs; first sightings are not changes.
func Detect(prev State, files map[string]string) (State, []Change) {
	current := State{
		LastCheck: clock.Now().UTC(),
		Sources:   make(map[string]SourceState, len(files)),
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var changes []Change
	for _, name := range names {
		path := files[name]
		hash, err := fileHash(path)
		if err != nil {
			current.Sources[name] = SourceState{Exists: false}
			continue
		}

		current.Sources[name] = SourceState{
			Exists:      true,
			ContentHash: hash,
			File:        filepath.Base(path),
		}

		prevSource := prev.Sources[name]
		if prevSource.ContentHash != "" && prevSource.ContentHash != hash {
			changes = append(changes, Change{
				Source:  name,
				Details: fmt.Sprintf("file %s has been modified", filepath.Base(path)),
			})
		}
	}

	current.Changes = changes
	return current, changes
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
