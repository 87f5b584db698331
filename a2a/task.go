// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// TaskState represents the lifecycle state of a task.
type TaskState string

// Task states defined by the A2A protocol.
const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateRejected      TaskState = "rejected"
	TaskStateAuthRequired  TaskState = "auth-required"
	TaskStateUnknown       TaskState = "unknown"
)

// Terminal reports whether no further progress events are expected for a
// task in this state. A context has at most one non-terminal task at a
// time; that invariant decides whether a new user message continues an
// existing task or starts a new one.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected, TaskStateUnknown:
		return true
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired, TaskStateAuthRequired:
		return false
	default:
		return false
	}
}

// TaskStatus is the current status of a task. The status message, when
// present, is the most recent status-carrying message; it is folded into
// the task history once a newer status arrives.
type TaskStatus struct {
	Message   *Message  `json:"message,omitzero"`
	State     TaskState `json:"state"`
	Timestamp string    `json:"timestamp,omitzero"`
}

// Task is a unit of agent work with a lifecycle state, an optional message
// history, and optional artifacts.
type Task struct {
	Artifacts []*Artifact    `json:"artifacts,omitzero"`
	ContextID string         `json:"contextId"`
	History   []*Message     `json:"history,omitzero"`
	ID        string         `json:"id"`
	Metadata  map[string]any `json:"metadata,omitzero"`
	Status    TaskStatus     `json:"status"`
}

// Validate ensures the Task is well formed.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if t.ContextID == "" {
		return fmt.Errorf("task context ID cannot be empty")
	}
	if t.Status.State == "" {
		return fmt.Errorf("task status state cannot be empty")
	}
	return nil
}

// Artifact returns the artifact with the given id, or nil.
func (t *Task) Artifact(artifactID string) *Artifact {
	for _, a := range t.Artifacts {
		if a.ArtifactID == artifactID {
			return a
		}
	}
	return nil
}

// MarshalJSON adds the kind discriminator.
func (t *Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: KindTask, alias: (*alias)(t)})
}

func (*Task) conversationItem() {}
func (*Task) streamEvent()      {}
