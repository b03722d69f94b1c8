package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot describes one published copy of a lexicon.
type Snapshot struct {
	ID        uuid.UUID
	LexiconID string
	Version   string
	Digest    string // identifies the documents the snapshot was taken from
	CreatedAt time.Time
	Rows      map[string]int // inserted rows per table
}
