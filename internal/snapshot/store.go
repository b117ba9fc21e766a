package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"oslobors-bot/internal/types"
)

// ErrNoSnapshot is returned by ReadLatest when no snapshot has been
// persisted yet.
var ErrNoSnapshot = errors.New("no snapshot available")

const (
	filePrefix = "oslo_news_"
	fileSuffix = ".json"
	// Locators must sort lexicographically in chronological order;
	// "latest" is defined by locator sort order, not by re-checking the
	// clock.
	stampLayout = "20060102-150405"
)

// Store persists news snapshots as timestamped JSON files in one
// directory. Writes are append-only; snapshots are never mutated or
// overwritten, so no locking is needed.
type Store struct {
	dir string
	loc *time.Location
}

// NewStore creates a store rooted at dir. Locator timestamps are rendered
// in the given zone (the reference zone of the market, e.g. Europe/Oslo).
func NewStore(dir, timezone string) (*Store, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot timezone %q: %w", timezone, err)
	}
	return &Store{dir: dir, loc: loc}, nil
}

// Write persists the snapshot and returns its locator (the file name).
func (s *Store) Write(snap types.NewsSnapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	stamp := time.Unix(snap.FetchedAt, 0).In(s.loc).Format(stampLayout)
	name := filePrefix + stamp + fileSuffix

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), b, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// ReadLatest returns the snapshot whose locator sorts last among all
// persisted snapshots. Deterministic given the persisted set.
func (s *Store) ReadLatest() (types.NewsSnapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewsSnapshot{}, ErrNoSnapshot
		}
		return types.NewsSnapshot{}, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return types.NewsSnapshot{}, ErrNoSnapshot
	}
	sort.Strings(names)
	latest := names[len(names)-1]

	b, err := os.ReadFile(filepath.Join(s.dir, latest))
	if err != nil {
		return types.NewsSnapshot{}, err
	}
	var snap types.NewsSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return types.NewsSnapshot{}, fmt.Errorf("corrupt snapshot %s: %w", latest, err)
	}
	return snap, nil
}
