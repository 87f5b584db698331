// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import "sync"

// Selection tracks which context, task, and artifact the UI highlights,
// plus one-shot scroll targets cleared once the UI confirms the scroll.
type Selection struct {
	mu sync.Mutex

	contextID  string
	taskID     string
	artifactID string

	scrollToTaskID     string
	scrollToArtifactID string
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// SelectContext selects a context, auto-selecting its most recent task and
// clearing any artifact selection.
func (s *Selection) SelectContext(c *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.clearLocked()
		return
	}
	s.contextID = c.ContextID
	s.taskID = ""
	s.artifactID = ""
	if tasks := c.Tasks(); len(tasks) > 0 {
		s.taskID = tasks[len(tasks)-1].ID
	}
}

// SelectTask selects a task and requests a scroll to it.
func (s *Selection) SelectTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskID = taskID
	s.scrollToTaskID = taskID
}

// SelectArtifact selects an artifact and requests a scroll to it.
func (s *Selection) SelectArtifact(artifactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifactID = artifactID
	s.scrollToArtifactID = artifactID
}

// RetargetContext follows a context id rename.
func (s *Selection) RetargetContext(oldID, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contextID == oldID {
		s.contextID = newID
	}
}

// Clear resets the selection, as when starting a new chat.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Selection) clearLocked() {
	s.contextID = ""
	s.taskID = ""
	s.artifactID = ""
	s.scrollToTaskID = ""
	s.scrollToArtifactID = ""
}

// ContextID returns the selected context id, or "".
func (s *Selection) ContextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextID
}

// TaskID returns the selected task id, or "".
func (s *Selection) TaskID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskID
}

// ArtifactID returns the selected artifact id, or "".
func (s *Selection) ArtifactID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifactID
}

// TakeScrollToTask consumes the pending task scroll target, if any.
func (s *Selection) TakeScrollToTask() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.scrollToTaskID
	s.scrollToTaskID = ""
	return id, id != ""
}

// TakeScrollToArtifact consumes the pending artifact scroll target, if any.
func (s *Selection) TakeScrollToArtifact() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.scrollToArtifactID
	s.scrollToArtifactID = ""
	return id, id != ""
}
