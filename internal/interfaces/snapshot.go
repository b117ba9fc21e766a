package interfaces

import "oslobors-bot/internal/types"

// SnapshotStore persists deduplicated news collections. Writes are
// append-only: a new snapshot supersedes earlier ones but never replaces
// them. ReadLatest fails with the store's no-snapshot sentinel when nothing
// has been persisted yet.
type SnapshotStore interface {
	Write(snap types.NewsSnapshot) (locator string, err error)
	ReadLatest() (types.NewsSnapshot, error)
}
