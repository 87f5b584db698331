// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Artifact is a named output produced by a task, composed of parts.
// Artifacts are immutable once received; a later artifact-update event
// carrying the same id replaces the prior version wholesale.
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Description string         `json:"description,omitzero"`
	Extensions  []string       `json:"extensions,omitzero"`
	Metadata    map[string]any `json:"metadata,omitzero"`
	Name        string         `json:"name,omitzero"`
	Parts       []Part         `json:"parts"`
}

// Validate ensures the Artifact is well formed.
func (a *Artifact) Validate() error {
	if a.ArtifactID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}
	return nil
}

// UnmarshalJSON decodes the polymorphic parts list.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	type alias Artifact
	aux := struct {
		Parts []jsontext.Value `json:"parts"`
		*alias
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parts, err := unmarshalParts(aux.Parts)
	if err != nil {
		return err
	}
	a.Parts = parts
	return nil
}
