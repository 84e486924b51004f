// Package storage persists player vein mining preferences.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Data are the persisted preferences of a player.
type Data struct {
	ActivationStrategy string   `yaml:"activationStrategy,omitempty"`
	DisabledCategories []string `yaml:"disabledCategories,omitempty"`
	VeinMiningPattern  string   `yaml:"veinMiningPattern,omitempty"`
}

// Store loads and saves player data.
type Store interface {
	// Load returns the data of the player or nil if none is stored.
	Load(ctx context.Context, id uuid.UUID) (*Data, error)
	// Save stores the data of the player.
	Save(ctx context.Context, id uuid.UUID, data *Data) error
}

// FileStore stores the data of each player in a YAML file named by the player id.
type FileStore struct {
	dir string
	mu  sync.Mutex // serializes writes
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a FileStore storing files in dir.
// The directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory of the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".yml")
}

func (s *FileStore) Load(ctx context.Context, id uuid.UUID) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading player data of %s: %w", id, err)
	}
	data := new(Data)
	if err = yaml.Unmarshal(b, data); err != nil {
		return nil, fmt.Errorf("error parsing player data of %s: %w", id, err)
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, id uuid.UUID, data *Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data == nil {
		return errors.New("player data must not be nil")
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("error encoding player data of %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("error creating player data directory: %w", err)
	}
	// Write to a temp file first so a crash never leaves a truncated file.
	tmp, err := os.CreateTemp(s.dir, id.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating player data file of %s: %w", id, err)
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing player data of %s: %w", id, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error writing player data of %s: %w", id, err)
	}
	if err = os.Rename(tmp.Name(), s.path(id)); err != nil {
		return fmt.Errorf("error writing player data of %s: %w", id, err)
	}
	return nil
}

// Memory is an in-memory Store.
type Memory struct {
	mu   sync.RWMutex
	data map[uuid.UUID]Data
}

var _ Store = (*Memory)(nil)

func (m *Memory) Load(ctx context.Context, id uuid.UUID) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	d.DisabledCategories = append([]string(nil), d.DisabledCategories...)
	return &d, nil
}

func (m *Memory) Save(ctx context.Context, id uuid.UUID, data *Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data == nil {
		return errors.New("player data must not be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[uuid.UUID]Data{}
	}
	d := *data
	d.DisabledCategories = append([]string(nil), d.DisabledCategories...)
	m.data[id] = d
	return nil
}

// Len returns the number of players with stored data.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
