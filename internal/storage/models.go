package storage

import "time"

// SaveSlot is one persisted session snapshot. Snapshot holds the encoded
// session state; the other columns are denormalized for listing.
type SaveSlot struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	SessionID      string    `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	Name           string    `json:"name"`
	LibraryVersion int       `json:"library_version"`
	TotalCrafts    int       `json:"total_crafts"`
	Balance        int       `json:"balance"`
	Snapshot       []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PromotedEntry records a registry entry a session promoted at runtime, so
// discoveries can be listed without decoding snapshots.
type PromotedEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"uniqueIndex:idx_promoted_session_kind_key;size:64;not null" json:"session_id"`
	Kind      string    `gorm:"uniqueIndex:idx_promoted_session_kind_key;size:16;not null" json:"kind"`
	Key       string    `gorm:"uniqueIndex:idx_promoted_session_kind_key;size:191;not null" json:"key"`
	Name      string    `json:"name"`
	Tier      int       `json:"tier"`
	Elements  string    `json:"elements"`
	CodeBits  string    `json:"code_bits"`
	CreatedAt time.Time `json:"created_at"`
}
