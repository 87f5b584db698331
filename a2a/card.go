// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
)

// AgentProvider represents the service provider of an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// AgentCapabilities describes optional protocol features an agent supports.
type AgentCapabilities struct {
	Extensions             []AgentExtension `json:"extensions,omitzero"`
	PushNotifications      bool             `json:"pushNotifications,omitzero"`
	StateTransitionHistory bool             `json:"stateTransitionHistory,omitzero"`
	Streaming              bool             `json:"streaming,omitzero"`
}

// AgentExtension declares a protocol extension supported by an agent.
type AgentExtension struct {
	Description string         `json:"description,omitzero"`
	Params      map[string]any `json:"params,omitzero"`
	Required    bool           `json:"required,omitzero"`
	URI         string         `json:"uri"`
}

// AgentSkill describes a unit of capability an agent can perform.
type AgentSkill struct {
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitzero"`
	ID          string   `json:"id"`
	InputModes  []string `json:"inputModes,omitzero"`
	Name        string   `json:"name"`
	OutputModes []string `json:"outputModes,omitzero"`
	Tags        []string `json:"tags,omitzero"`
}

// SecurityScheme describes an authentication scheme declared by an agent
// card. Only the type is interpreted by this client; the remaining fields
// are carried opaquely.
type SecurityScheme struct {
	Description string         `json:"description,omitzero"`
	Type        string         `json:"type"`
	Extra       map[string]any `json:"-"`
}

// AgentCard is the static descriptor of a remote agent, published at the
// well-known card URL. A card is immutable once fetched and is identified
// by its URL field.
type AgentCard struct {
	Capabilities                      AgentCapabilities         `json:"capabilities"`
	DefaultInputModes                 []string                  `json:"defaultInputModes,omitzero"`
	DefaultOutputModes                []string                  `json:"defaultOutputModes,omitzero"`
	Description                       string                    `json:"description"`
	DocumentationURL                  string                    `json:"documentationUrl,omitzero"`
	IconURL                           string                    `json:"iconUrl,omitzero"`
	Name                              string                    `json:"name"`
	Provider                          *AgentProvider            `json:"provider,omitzero"`
	Security                          []map[string][]string     `json:"security,omitzero"`
	SecuritySchemes                   map[string]SecurityScheme `json:"securitySchemes,omitzero"`
	Skills                            []AgentSkill              `json:"skills"`
	SupportsAuthenticatedExtendedCard bool                      `json:"supportsAuthenticatedExtendedCard,omitzero"`
	URL                               string                    `json:"url"`
	Version                           string                    `json:"version"`
}

// Validate ensures the AgentCard carries the fields the client depends on.
func (c *AgentCard) Validate() error {
	if c == nil {
		return fmt.Errorf("agent card is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("agent card missing required field: name")
	}
	if c.URL == "" {
		return fmt.Errorf("agent card missing required field: url")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card missing required field: version")
	}
	return nil
}

// FindSkill finds a skill by ID in an agent card.
func (c *AgentCard) FindSkill(skillID string) (*AgentSkill, bool) {
	for i := range c.Skills {
		if c.Skills[i].ID == skillID {
			return &c.Skills[i], true
		}
	}
	return nil, false
}
