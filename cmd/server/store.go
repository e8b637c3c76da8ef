package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// proposalStore keeps generated schedules in memory until their TTL
// expires. Persistence is the caller's concern.
type proposalStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]storedProposal
}

type storedProposal struct {
	proposal  proposalResponse
	expiresAt time.Time
}

func newProposalStore(ttl time.Duration) *proposalStore {
	store := &proposalStore{ttl: ttl, items: make(map[string]storedProposal)}
	go store.evictLoop()
	return store
}

func (s *proposalStore) Put(proposal proposalResponse) string {
	id := uuid.NewString()
	proposal.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = storedProposal{proposal: proposal, expiresAt: time.Now().Add(s.ttl)}
	return id
}

func (s *proposalStore) Get(id string) (proposalResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, found := s.items[id]
	if !found || time.Now().After(item.expiresAt) {
		return proposalResponse{}, false
	}
	return item.proposal, true
}

func (s *proposalStore) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, item := range s.items {
			if now.After(item.expiresAt) {
				delete(s.items, id)
			}
		}
		s.mu.Unlock()
	}
}
