package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"academy-assistant/internal/common/metrics"
	"academy-assistant/internal/models"
)

// MemoryStore keeps conversations in process. Values are copied in and out so callers
// never share state.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*models.Conversation
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		items: make(map[string]*models.Conversation),
		now:   time.Now,
	}
}

func (s *MemoryStore) expired(conv *models.Conversation) bool {
	return s.ttl > 0 && s.now().Sub(conv.UpdatedAt) > s.ttl
}

func (s *MemoryStore) Load(_ context.Context, id string) (*models.Conversation, error) {
	s.mu.RLock()
	conv, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(conv) {
		s.mu.Lock()
		current, ok := s.items[id]
		if ok && current == conv {
			delete(s.items, id)
			metrics.ActiveConversations.Set(float64(len(s.items)))
			ok = false
		}
		s.mu.Unlock()
		// a Save between the read and the lock replaces the entry and wins
		if !ok {
			return nil, ErrNotFound
		}
		conv = current
	}
	return clone(conv)
}

func (s *MemoryStore) Save(_ context.Context, conv *models.Conversation) error {
	if conv == nil || conv.ID == "" {
		return fmt.Errorf("conversation id is required")
	}
	touch(conv, s.now())
	c, err := clone(conv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items[conv.ID] = c
	metrics.ActiveConversations.Set(float64(len(s.items)))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	metrics.ActiveConversations.Set(float64(len(s.items)))
	s.mu.Unlock()
	return nil
}

// Sweep drops expired conversations and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.items {
		if s.expired(conv) {
			delete(s.items, id)
			removed++
		}
	}
	metrics.ActiveConversations.Set(float64(len(s.items)))
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
