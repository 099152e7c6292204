// Package config manages the persistent cubecode state file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// DefaultMaxSteps is the step limit handed to the solver when none is configured.
const DefaultMaxSteps = 21

// AppState represents the persistent application state.
type AppState struct {
	DBPath        string `json:"db_path,omitempty"`
	LastCode      string `json:"last_code,omitempty"`
	SolverCommand string `json:"solver_command,omitempty"`
	MaxSteps      int    `json:"max_steps,omitempty"`
	LastDeviceID  string `json:"last_device_id,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultDir returns ~/.cubecode, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubecode")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a new state file manager, loading existing state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", sf.path, err)
	}
	return nil
}

// Save writes the state to disk atomically.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := renameio.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// MaxSteps returns the configured step limit or DefaultMaxSteps.
func (sf *StateFile) MaxSteps() int {
	if sf.state.MaxSteps > 0 {
		return sf.state.MaxSteps
	}
	return DefaultMaxSteps
}

// SetLastCode remembers the most recent code.
func (sf *StateFile) SetLastCode(code string) error {
	sf.state.LastCode = code
	return sf.Save()
}

// SetSolver sets the solver command and step limit.
func (sf *StateFile) SetSolver(command string, maxSteps int) error {
	sf.state.SolverCommand = command
	sf.state.MaxSteps = maxSteps
	return sf.Save()
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetLastDevice sets the last connected GoCube.
func (sf *StateFile) SetLastDevice(deviceID string) error {
	sf.state.LastDeviceID = deviceID
	return sf.Save()
}
