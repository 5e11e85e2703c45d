package draft

import "context"

// EditBufferKeyPrefix prefixes the single per-owner edit slot.
const EditBufferKeyPrefix = "editReservation:"

// EditBufferKey returns the slot key of owner.
func EditBufferKey(owner string) string {
	return EditBufferKeyPrefix + owner
}

// EditBuffer is a single-slot, read-once store for edit snapshots.
type EditBuffer interface {
	// Save overwrites the owner's slot.
	Save(ctx context.Context, owner string, s Snapshot) error
	// Consume reads and clears the slot. It returns nil when the slot is empty
	// or held unreadable content.
	Consume(ctx context.Context, owner string) (*Snapshot, error)
}
