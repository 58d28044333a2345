package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/limaJavier/tournament/pkg/search"
)

// Records of one instance by tag key
type Records map[string]search.Record

// Store keeps one JSON file per instance, <dir>/<teams>.json, holding the
// records of every configuration run on it.
type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (store *Store) Path(teams uint64) string {
	return filepath.Join(store.dir, fmt.Sprintf("%d.json", teams))
}

// Save merges record into the file of the instance, replacing an earlier
// record with the same tag.
func (store *Store) Save(teams uint64, tag search.Tag, record search.Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.load(teams)
	if err != nil {
		return err
	}
	records[tag.Key()] = record

	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("creating result directory: %w", err)
	}
	bytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records of %d teams: %w", teams, err)
	}
	if err := os.WriteFile(store.Path(teams), bytes, 0o644); err != nil {
		return fmt.Errorf("writing records of %d teams: %w", teams, err)
	}
	return nil
}

// Load returns the records of an instance; a missing file holds none.
func (store *Store) Load(teams uint64) (Records, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.load(teams)
}

func (store *Store) load(teams uint64) (Records, error) {
	bytes, err := os.ReadFile(store.Path(teams))
	if errors.Is(err, fs.ErrNotExist) {
		return make(Records), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading records of %d teams: %w", teams, err)
	}

	records := make(Records)
	if err := json.Unmarshal(bytes, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", store.Path(teams), err)
	}
	return records, nil
}

// LoadAll returns the records of every instance in the directory. Files that
// are not named after an instance size are skipped.
func (store *Store) LoadAll() (map[uint64]Records, error) {
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		return nil, fmt.Errorf("reading result directory: %w", err)
	}

	all := make(map[uint64]Records)
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		teams, err := strconv.ParseUint(name, 10, 64)
		if err != nil {
			continue
		}

		records, err := store.Load(teams)
		if err != nil {
			return nil, err
		}
		all[teams] = records
	}
	return all, nil
}
