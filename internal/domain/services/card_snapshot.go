package services

import (
	"context"
	"sync"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/feed"
)

// CardSnapshot retains the most recent product card emission so that
// request handlers can serve it without blocking on the pipeline.
type CardSnapshot struct {
	mu    sync.RWMutex
	cards []entities.ProductCardData
	ready bool
}

func NewCardSnapshot() *CardSnapshot {
	return &CardSnapshot{}
}

// Run consumes the card feed until ctx is cancelled, keeping the
// latest emission available through Latest.
func (s *CardSnapshot) Run(ctx context.Context, cards feed.Feed[[]entities.ProductCardData]) {
	for snapshot := range cards(ctx) {
		s.mu.Lock()
		s.cards = snapshot
		s.ready = true
		s.mu.Unlock()
	}
}

// Latest returns the most recent card set. The second return value is
// false until the pipeline has produced its first emission.
func (s *CardSnapshot) Latest() ([]entities.ProductCardData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cards, s.ready
}
