// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"sync"

	"github.com/a2anet/a2a-ui/a2a"
)

// AgentRegistry holds the registered agent cards, deduplicated by endpoint
// URL, plus the active-agent pointer.
type AgentRegistry struct {
	mu     sync.RWMutex
	agents []*a2a.AgentCard
	active string
}

// NewAgentRegistry creates an empty registry.
func NewAgentRegistry() *AgentRegistry {
	return &AgentRegistry{}
}

// Add registers an agent card. A card whose URL matches an existing entry
// replaces it in place, keeping list position and the active pointer.
func (r *AgentRegistry) Add(card *a2a.AgentCard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.agents {
		if existing.URL == card.URL {
			r.agents[i] = card
			return
		}
	}
	r.agents = append(r.agents, card)
}

// Remove deletes the agent with the given URL. Removing the active agent
// clears the active pointer.
func (r *AgentRegistry) Remove(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.agents {
		if existing.URL == url {
			r.agents = append(r.agents[:i], r.agents[i+1:]...)
			break
		}
	}
	if r.active == url {
		r.active = ""
	}
}

// Agents returns the registered cards in registration order.
func (r *AgentRegistry) Agents() []*a2a.AgentCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*a2a.AgentCard, len(r.agents))
	copy(out, r.agents)
	return out
}

// Get returns the card with the given URL, or nil.
func (r *AgentRegistry) Get(url string) *a2a.AgentCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.agents {
		if existing.URL == url {
			return existing
		}
	}
	return nil
}

// SetActive points the active agent at the given URL. The agent must be
// registered; unknown URLs are ignored.
func (r *AgentRegistry) SetActive(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.agents {
		if existing.URL == url {
			r.active = url
			return
		}
	}
}

// Active returns the active agent card, or nil.
func (r *AgentRegistry) Active() *a2a.AgentCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.agents {
		if existing.URL == r.active {
			return existing
		}
	}
	return nil
}
