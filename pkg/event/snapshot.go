package event

import (
	"encoding/json"
	"time"
)

const (
	// SnapshotsTopic is the subject prefix mirrored snapshots are published
	// under. The full subject appends the entity category code.
	SnapshotsTopic = "floorsync.snapshots"

	EventEntitySnapshot = "entity.snapshot"
)

// Snapshot is the envelope written into sibling mailboxes and mirrored to
// the feed. Payload holds the whole entity; receivers replace their copy.
type Snapshot struct {
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Origin     string          `json:"origin"`
	Category   string          `json:"category"`
	Ref        string          `json:"ref"`
	Payload    json.RawMessage `json:"payload"`
}

// SubjectFor returns the feed subject for a category code.
func SubjectFor(prefix, category string) string {
	if prefix == "" {
		prefix = SnapshotsTopic
	}
	return prefix + "." + category
}
