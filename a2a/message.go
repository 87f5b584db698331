// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Role represents the role of a message sender.
type Role string

// Role constants for message senders.
const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Metadata keys for the tool-call presentation convention. These are not a
// protocol-level concept; agents layer them on top of message metadata so
// clients can group a call with its result.
const (
	MetadataKeyType       = "type"
	MetadataKeyToolCallID = "toolCallId"

	MetadataTypeToolCall       = "tool-call"
	MetadataTypeToolCallResult = "tool-call-result"
)

// Message is a single conversational exchange unit.
type Message struct {
	ContextID        string         `json:"contextId,omitzero"`
	Extensions       []string       `json:"extensions,omitzero"`
	MessageID        string         `json:"messageId"`
	Metadata         map[string]any `json:"metadata,omitzero"`
	Parts            []Part         `json:"parts"`
	ReferenceTaskIDs []string       `json:"referenceTaskIds,omitzero"`
	Role             Role           `json:"role"`
	TaskID           string         `json:"taskId,omitzero"`
}

// NewTextMessage creates a message containing a single TextPart with a
// fresh UUID message id.
func NewTextMessage(role Role, text string) *Message {
	return &Message{
		MessageID: GenerateID(),
		Role:      role,
		Parts:     []Part{&TextPart{Text: text}},
	}
}

// Validate ensures the Message is well formed.
func (m *Message) Validate() error {
	if m.Role != RoleAgent && m.Role != RoleUser {
		return fmt.Errorf("invalid message role: %q", m.Role)
	}
	if m.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	return nil
}

// Text extracts and joins all TextPart content with newlines.
func (m *Message) Text() string {
	var texts []string
	for _, part := range m.Parts {
		if tp, ok := part.(*TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// ToolCallID returns the correlating tool call id from the message
// metadata, or "" when the message is not part of a tool-call exchange.
func (m *Message) ToolCallID() string {
	if m.Metadata == nil {
		return ""
	}
	id, _ := m.Metadata[MetadataKeyToolCallID].(string)
	return id
}

// IsToolCall reports whether the message is marked as a tool call.
func (m *Message) IsToolCall() bool {
	return m.metadataType() == MetadataTypeToolCall
}

// IsToolCallResult reports whether the message is marked as a tool call
// result.
func (m *Message) IsToolCallResult() bool {
	return m.metadataType() == MetadataTypeToolCallResult
}

func (m *Message) metadataType() string {
	if m.Metadata == nil {
		return ""
	}
	t, _ := m.Metadata[MetadataKeyType].(string)
	return t
}

// MarshalJSON adds the kind discriminator.
func (m *Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: KindMessage, alias: (*alias)(m)})
}

// UnmarshalJSON decodes the polymorphic parts list.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		Parts []jsontext.Value `json:"parts"`
		*alias
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parts, err := unmarshalParts(aux.Parts)
	if err != nil {
		return err
	}
	m.Parts = parts
	return nil
}

func (*Message) conversationItem() {}
func (*Message) streamEvent()      {}
