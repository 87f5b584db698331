// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the wire data model for the Agent-to-Agent (A2A)
// protocol as consumed by the chat client: agent cards, messages, tasks,
// artifacts, streaming events, and the JSON-RPC 2.0 envelopes that carry
// them.
package a2a

import (
	"github.com/google/uuid"
)

// Protocol kind discriminators used across messages, tasks, and stream
// events.
const (
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"
)

// A2A RPC method names.
const (
	// MethodMessageSend is the method name for a unary message send.
	MethodMessageSend = "message/send"
	// MethodMessageStream is the method name for a streaming message send.
	MethodMessageStream = "message/stream"
)

// GenerateID returns a new random UUID string, used for message, task,
// context, and request identifiers.
func GenerateID() string {
	return uuid.NewString()
}
