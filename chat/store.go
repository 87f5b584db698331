// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat implements the conversation-state engine: the context store
// that reconciles protocol events into local state, selection tracking, the
// agent registry, and the send orchestration that ties them to the
// transport.
package chat

import (
	"sync"

	"github.com/a2anet/a2a-ui/a2a"
)

// Context is one conversation thread: an ordered mix of freestanding
// messages and tasks, plus the optimistic send state staged against it.
// Context values published by the Store are immutable; every mutation
// produces a replacement.
type Context struct {
	// ContextID is server-assigned, except for the client-generated
	// temporary id a new conversation starts under.
	ContextID string
	// Agent is the card of the agent this conversation is with.
	Agent *a2a.AgentCard
	// Items holds messages and tasks in arrival order.
	Items []a2a.ConversationItem
	// PendingMessage is the optimistically displayed user message of an
	// unsettled send.
	PendingMessage *a2a.Message
	// MessageText is the staged input text.
	MessageText string
	// Loading marks an in-flight send.
	Loading bool
}

// clone returns a shallow copy with its own Items slice. Nested items are
// shared; they are never mutated in place.
func (c *Context) clone() *Context {
	dup := *c
	dup.Items = make([]a2a.ConversationItem, len(c.Items))
	copy(dup.Items, c.Items)
	return &dup
}

// Task returns the task with the given id, or nil.
func (c *Context) Task(taskID string) *a2a.Task {
	for _, item := range c.Items {
		if task, ok := item.(*a2a.Task); ok && task.ID == taskID {
			return task
		}
	}
	return nil
}

// Tasks returns the context's tasks in arrival order.
func (c *Context) Tasks() []*a2a.Task {
	var tasks []*a2a.Task
	for _, item := range c.Items {
		if task, ok := item.(*a2a.Task); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// NonTerminalTask returns the context's single live task, or nil when every
// task has reached a terminal state.
func (c *Context) NonTerminalTask() *a2a.Task {
	for _, item := range c.Items {
		if task, ok := item.(*a2a.Task); ok && !task.Status.State.Terminal() {
			return task
		}
	}
	return nil
}

// Store owns all Context objects, keyed by context id, plus the active
// selection pointer. All mutations replace the affected Context wholesale
// so concurrent readers never observe a half-updated structure.
type Store struct {
	mu              sync.RWMutex
	contexts        map[string]*Context
	order           []string
	activeContextID string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{contexts: make(map[string]*Context)}
}

// AddContext inserts a context. An existing context with the same id is
// replaced in place, preserving list position.
func (s *Store) AddContext(c *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[c.ContextID]; !ok {
		s.order = append(s.order, c.ContextID)
	}
	s.contexts[c.ContextID] = c
}

// RemoveContext deletes a context by id. Removing the active context clears
// the active pointer.
func (s *Store) RemoveContext(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[id]; !ok {
		return
	}
	delete(s.contexts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activeContextID == id {
		s.activeContextID = ""
	}
}

// Context returns the context with the given id, or nil.
func (s *Store) Context(id string) *Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contexts[id]
}

// Contexts returns all contexts in insertion order.
func (s *Store) Contexts() []*Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Context, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contexts[id])
	}
	return out
}

// SetActiveContext repoints the active selection. An empty id clears it.
func (s *Store) SetActiveContext(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeContextID = id
}

// ActiveContext returns the active context, or nil when none is selected.
func (s *Store) ActiveContext() *Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeContextID == "" {
		return nil
	}
	return s.contexts[s.activeContextID]
}

// ActiveContextID returns the active context id, or "".
func (s *Store) ActiveContextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeContextID
}

// SetLoading sets the loading flag on a context.
func (s *Store) SetLoading(id string, loading bool) {
	s.updateContext(id, func(c *Context) {
		c.Loading = loading
	})
}

// SetMessageText sets the staged input text on a context.
func (s *Store) SetMessageText(id, text string) {
	s.updateContext(id, func(c *Context) {
		c.MessageText = text
	})
}

// SetPendingMessage stages or clears the optimistic user message.
func (s *Store) SetPendingMessage(id string, msg *a2a.Message) {
	s.updateContext(id, func(c *Context) {
		c.PendingMessage = msg
	})
}

// updateContext applies fn to a clone of the context and republishes it.
// Unknown ids are a no-op.
func (s *Store) updateContext(id string, fn func(*Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.contexts[id]
	if !ok {
		return
	}
	next := current.clone()
	fn(next)
	s.contexts[id] = next
}

// ApplyEvent folds one protocol event into the context with the given id.
// Events referencing an unknown context or task are dropped rather than
// raised; stream ordering across tasks is not guaranteed by the protocol.
func (s *Store) ApplyEvent(id string, event a2a.StreamEvent) {
	s.updateContext(id, func(c *Context) {
		switch e := event.(type) {
		case *a2a.Message:
			applyMessage(c, e)
		case *a2a.Task:
			applyTaskSnapshot(c, e)
		case *a2a.TaskStatusUpdateEvent:
			applyStatusUpdate(c, e)
		case *a2a.TaskArtifactUpdateEvent:
			applyArtifactUpdate(c, e)
		}
	})
}

// applyMessage upserts a message: freestanding when it carries no task id,
// otherwise into the owning task's history. A message for an unknown task
// is dropped; a task snapshot must arrive first.
func applyMessage(c *Context, msg *a2a.Message) {
	if msg.TaskID == "" {
		for i, item := range c.Items {
			if existing, ok := item.(*a2a.Message); ok && existing.MessageID == msg.MessageID {
				c.Items[i] = msg
				return
			}
		}
		c.Items = append(c.Items, msg)
		return
	}

	idx, task := findTask(c, msg.TaskID)
	if task == nil {
		return
	}
	next := cloneTask(task)
	next.History = upsertMessage(next.History, msg)
	c.Items[idx] = next
}

// applyTaskSnapshot upserts a complete task by id.
func applyTaskSnapshot(c *Context, task *a2a.Task) {
	for i, item := range c.Items {
		if existing, ok := item.(*a2a.Task); ok && existing.ID == task.ID {
			c.Items[i] = task
			return
		}
	}
	c.Items = append(c.Items, task)
}

// applyStatusUpdate replaces a task's status. The outgoing status message,
// if any, is folded into history first so the full message trail survives;
// dedup by message id keeps redelivered statuses from duplicating it.
func applyStatusUpdate(c *Context, update *a2a.TaskStatusUpdateEvent) {
	idx, task := findTask(c, update.TaskID)
	if task == nil {
		return
	}
	next := cloneTask(task)
	if old := next.Status.Message; old != nil && !historyContains(next.History, old.MessageID) {
		next.History = append(next.History, old)
	}
	next.Status = update.Status
	c.Items[idx] = next
}

// applyArtifactUpdate upserts a complete artifact by id. Updates replace
// wholesale; no part-level merging.
func applyArtifactUpdate(c *Context, update *a2a.TaskArtifactUpdateEvent) {
	if update.Artifact == nil {
		return
	}
	idx, task := findTask(c, update.TaskID)
	if task == nil {
		return
	}
	next := cloneTask(task)
	replaced := false
	for i, a := range next.Artifacts {
		if a.ArtifactID == update.Artifact.ArtifactID {
			next.Artifacts[i] = update.Artifact
			replaced = true
			break
		}
	}
	if !replaced {
		next.Artifacts = append(next.Artifacts, update.Artifact)
	}
	c.Items[idx] = next
}

// PromoteContext renames a context from its temporary client id to the
// server-assigned id in one step: entries move wholesale, list position is
// kept, and the active pointer follows. A no-op when the ids are equal or
// the temporary id is unknown. When a context already exists under the new
// id the server-keyed entry absorbs the temporary one's entries.
func (s *Store) PromoteContext(tempID, serverID string) {
	if tempID == serverID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	temp, ok := s.contexts[tempID]
	if !ok {
		return
	}

	promoted := temp.clone()
	promoted.ContextID = serverID
	if existing, ok := s.contexts[serverID]; ok {
		merged := existing.clone()
		merged.Items = append(merged.Items, promoted.Items...)
		merged.PendingMessage = promoted.PendingMessage
		merged.MessageText = promoted.MessageText
		merged.Loading = promoted.Loading
		promoted = merged
		for i, id := range s.order {
			if id == tempID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	} else {
		for i, id := range s.order {
			if id == tempID {
				s.order[i] = serverID
				break
			}
		}
	}
	delete(s.contexts, tempID)
	s.contexts[serverID] = promoted
	if s.activeContextID == tempID {
		s.activeContextID = serverID
	}
}

func findTask(c *Context, taskID string) (int, *a2a.Task) {
	for i, item := range c.Items {
		if task, ok := item.(*a2a.Task); ok && task.ID == taskID {
			return i, task
		}
	}
	return -1, nil
}

// cloneTask copies a task with its own history and artifacts slices so the
// previously published value stays untouched.
func cloneTask(t *a2a.Task) *a2a.Task {
	dup := *t
	dup.History = make([]*a2a.Message, len(t.History))
	copy(dup.History, t.History)
	dup.Artifacts = make([]*a2a.Artifact, len(t.Artifacts))
	copy(dup.Artifacts, t.Artifacts)
	return &dup
}

func upsertMessage(history []*a2a.Message, msg *a2a.Message) []*a2a.Message {
	for i, existing := range history {
		if existing.MessageID == msg.MessageID {
			history[i] = msg
			return history
		}
	}
	return append(history, msg)
}

func historyContains(history []*a2a.Message, messageID string) bool {
	for _, m := range history {
		if m.MessageID == messageID {
			return true
		}
	}
	return false
}
