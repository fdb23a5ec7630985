package storage

import "errors"

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Repository persists session snapshots.
type Repository interface {
	// SaveSnapshot upserts the slot keyed by session id and records any
	// promoted entries not yet stored.
	SaveSnapshot(slot *SaveSlot, promoted []PromotedEntry) error
	LoadSnapshot(sessionID string) (*SaveSlot, error)
	// ListSnapshots returns every slot without its snapshot blob, most
	// recently updated first.
	ListSnapshots() ([]SaveSlot, error)
	DeleteSnapshot(sessionID string) error
	ListPromoted(sessionID string) ([]PromotedEntry, error)
}
