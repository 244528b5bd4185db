// Package state persists per-project scaffold state under
// .sprout/state.yml in the generated app directory. The file records
// how the app was created so later tooling can inspect it.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// State is a generic map of key-value pairs so any sprout tool can
// store arbitrary state data alongside the scaffold record.
type State map[string]interface{}

// recordKey is where the scaffold record lives inside the state map.
const recordKey = "scaffold"

// Record describes how an app was scaffolded.
type Record struct {
	Template  string    `yaml:"template" json:"template"`
	Manager   string    `yaml:"manager" json:"manager"`
	Version   string    `yaml:"version" json:"version"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
}

// filePath returns the state file path for an app directory.
func filePath(dir string) string {
	return filepath.Join(dir, ".sprout", "state.yml")
}

// Load loads the state for an app directory. Returns an empty state if
// the file doesn't exist.
func Load(dir string) (State, error) {
	data, err := os.ReadFile(filePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save writes the state file for an app directory, creating the
// .sprout directory if needed.
func Save(dir string, state State) error {
	path := filePath(dir)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
// Returns the value and true if found, nil and false otherwise.
func Get(dir, key string) (interface{}, bool, error) {
	state, err := Load(dir)
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString is a convenience function to get a string value from
// state. Returns empty string if the key doesn't exist or the value is
// not a string.
func GetString(dir, key string) (string, error) {
	val, ok, err := Get(dir, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// Set sets a value in the state.
func Set(dir, key string, value interface{}) error {
	state, err := Load(dir)
	if err != nil {
		return err
	}

	state[key] = value
	return Save(dir, state)
}

// Delete removes a key from the state.
func Delete(dir, key string) error {
	state, err := Load(dir)
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(dir, state)
}

// EnsureIgnored adds the state directory to the app's .gitignore so
// scaffold bookkeeping never lands in the project's history. Already
// listed entries are left alone.
func EnsureIgnored(dir string) error {
	const entry = ".sprout/"

	target := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(target)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == entry {
			return nil
		}
	}

	var addition []byte
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		addition = append(addition, '\n')
	}
	addition = append(addition, entry+"\n"...)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open .gitignore: %w", err)
	}
	if _, err := f.Write(addition); err != nil {
		f.Close()
		return fmt.Errorf("append to .gitignore: %w", err)
	}
	return f.Close()
}

// WriteRecord stores the scaffold record for an app directory.
func WriteRecord(dir string, record Record) error {
	return Set(dir, recordKey, record)
}

// ReadRecord loads the scaffold record for an app directory. Returns
// false when the directory was not scaffolded by sprout.
func ReadRecord(dir string) (Record, bool, error) {
	val, ok, err := Get(dir, recordKey)
	if err != nil || !ok {
		return Record{}, false, err
	}

	// YAML round-trips the record as a generic map
	data, err := yaml.Marshal(val)
	if err != nil {
		return Record{}, false, fmt.Errorf("marshal scaffold record: %w", err)
	}
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return Record{}, false, fmt.Errorf("parse scaffold record: %w", err)
	}

	return record, true, nil
}
