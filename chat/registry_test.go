// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2anet/a2a-ui/a2a"
)

func card(name, url string) *a2a.AgentCard {
	return &a2a.AgentCard{Name: name, URL: url, Version: "1.0"}
}

func TestRegistryDedupByURL(t *testing.T) {
	r := NewAgentRegistry()
	r.Add(card("First", "https://a.example.com"))
	r.Add(card("Second", "https://b.example.com"))
	r.SetActive("https://a.example.com")

	// Re-adding the same URL replaces in place, keeping position and the
	// active pointer.
	r.Add(card("First v2", "https://a.example.com"))

	agents := r.Agents()
	require.Len(t, agents, 2)
	assert.Equal(t, "First v2", agents[0].Name)
	assert.Equal(t, "Second", agents[1].Name)

	active := r.Active()
	require.NotNil(t, active)
	assert.Equal(t, "First v2", active.Name)
}

func TestRegistryRemove(t *testing.T) {
	r := NewAgentRegistry()
	r.Add(card("First", "https://a.example.com"))
	r.SetActive("https://a.example.com")

	r.Remove("https://a.example.com")
	assert.Empty(t, r.Agents())
	assert.Nil(t, r.Active())
}

func TestRegistrySetActiveUnknownURLIgnored(t *testing.T) {
	r := NewAgentRegistry()
	r.Add(card("First", "https://a.example.com"))
	r.SetActive("https://nope.example.com")
	assert.Nil(t, r.Active())
}
