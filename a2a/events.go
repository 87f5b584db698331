// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ConversationItem is the closed union over the entries of a conversation
// thread: freestanding messages and tasks, in arrival order. Implemented by
// *Message and *Task only.
type ConversationItem interface {
	conversationItem()
}

// StreamEvent is one unit of a streaming send: a message, a task snapshot,
// a status update, or an artifact update. Implemented by *Message, *Task,
// *TaskStatusUpdateEvent, and *TaskArtifactUpdateEvent only; consumers must
// switch over all four variants.
type StreamEvent interface {
	streamEvent()
}

// TaskStatusUpdateEvent announces a new status for a task.
type TaskStatusUpdateEvent struct {
	ContextID string         `json:"contextId,omitzero"`
	Final     bool           `json:"final,omitzero"`
	Metadata  map[string]any `json:"metadata,omitzero"`
	Status    TaskStatus     `json:"status"`
	TaskID    string         `json:"taskId"`
}

// MarshalJSON adds the kind discriminator.
func (e *TaskStatusUpdateEvent) MarshalJSON() ([]byte, error) {
	type alias TaskStatusUpdateEvent
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: KindStatusUpdate, alias: (*alias)(e)})
}

func (*TaskStatusUpdateEvent) streamEvent() {}

// TaskArtifactUpdateEvent delivers a complete artifact for a task. An event
// whose artifact id matches an existing artifact replaces it wholesale; no
// part-level merging is performed.
type TaskArtifactUpdateEvent struct {
	Append    bool           `json:"append,omitzero"`
	Artifact  *Artifact      `json:"artifact"`
	ContextID string         `json:"contextId,omitzero"`
	LastChunk bool           `json:"lastChunk,omitzero"`
	Metadata  map[string]any `json:"metadata,omitzero"`
	TaskID    string         `json:"taskId"`
}

// MarshalJSON adds the kind discriminator.
func (e *TaskArtifactUpdateEvent) MarshalJSON() ([]byte, error) {
	type alias TaskArtifactUpdateEvent
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: KindArtifactUpdate, alias: (*alias)(e)})
}

func (*TaskArtifactUpdateEvent) streamEvent() {}

// UnmarshalStreamEvent decodes a single stream event, dispatching on its
// kind field. Payloads wrapped in a JSON-RPC envelope are unwrapped first;
// an envelope carrying an error is surfaced as *JSONRPCError.
func UnmarshalStreamEvent(data []byte) (StreamEvent, error) {
	var envelope struct {
		JSONRPC string         `json:"jsonrpc"`
		Result  jsontext.Value `json:"result"`
		Error   *JSONRPCError  `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.JSONRPC != "" {
		if envelope.Error != nil {
			return nil, envelope.Error
		}
		if len(envelope.Result) > 0 {
			data = envelope.Result
		}
	}

	var kind struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return nil, fmt.Errorf("unmarshaling event kind: %w", err)
	}

	switch kind.Kind {
	case KindMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("unmarshaling message event: %w", err)
		}
		return &m, nil
	case KindTask:
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("unmarshaling task event: %w", err)
		}
		return &t, nil
	case KindStatusUpdate:
		var e TaskStatusUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("unmarshaling status update event: %w", err)
		}
		return &e, nil
	case KindArtifactUpdate:
		var e TaskArtifactUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("unmarshaling artifact update event: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unknown stream event kind: %q", kind.Kind)
	}
}
