package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tsaratour/service-booking/internal/domain/draft"
	"go.uber.org/zap"
)

// MemoryEditBuffer is an in-process edit buffer for tests and single-node development.
type MemoryEditBuffer struct {
	mu     sync.Mutex
	slots  map[string][]byte
	logger *zap.Logger
}

// NewMemoryEditBuffer creates an empty MemoryEditBuffer.
func NewMemoryEditBuffer(logger *zap.Logger) *MemoryEditBuffer {
	return &MemoryEditBuffer{slots: make(map[string][]byte), logger: logger}
}

// Save overwrites the owner's slot.
func (b *MemoryEditBuffer) Save(_ context.Context, owner string, s draft.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	b.SaveRaw(owner, data)
	return nil
}

// SaveRaw stores raw slot content as is.
func (b *MemoryEditBuffer) SaveRaw(owner string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[draft.EditBufferKey(owner)] = data
}

// Consume reads and clears the owner's slot.
func (b *MemoryEditBuffer) Consume(_ context.Context, owner string) (*draft.Snapshot, error) {
	b.mu.Lock()
	key := draft.EditBufferKey(owner)
	data, ok := b.slots[key]
	delete(b.slots, key)
	b.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return decodeSlot(b.logger, owner, data), nil
}
