// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/a2anet/a2a-ui/a2a"
	"github.com/a2anet/a2a-ui/client"
	"github.com/a2anet/a2a-ui/telemetry"
)

// Errors surfaced by the send workflow before any network call.
var (
	// ErrNoActiveAgent is returned when a send is attempted with no agent
	// selected.
	ErrNoActiveAgent = errors.New("no active agent selected")

	// ErrSendInFlight is returned when a send is attempted on a context
	// that already has one in flight. At most one send per context.
	ErrSendInFlight = errors.New("a send is already in flight for this context")

	// ErrEmptyMessage is returned for a blank message text.
	ErrEmptyMessage = errors.New("message text is empty")
)

// Notifier receives user-facing notifications. Messages are already
// phrased for display; diagnostic detail goes to the log instead.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}

// Sender is the transport surface the manager needs for one agent.
type Sender interface {
	SendMessage(ctx context.Context, params *a2a.MessageSendParams) (*a2a.SendMessageResponse, error)
	SendMessageStream(ctx context.Context, params *a2a.MessageSendParams) (<-chan client.StreamResult, error)
}

// ClientFactory builds a Sender for an agent card.
type ClientFactory func(card *a2a.AgentCard) (Sender, error)

// CardResolverFunc fetches and validates an agent card from a base URL.
type CardResolverFunc func(ctx context.Context, baseURL string) (*a2a.AgentCard, error)

// Manager orchestrates user actions across the registry, store, selection,
// and transport. It owns the send workflow and its rollback policy.
type Manager struct {
	store     *Store
	selection *Selection
	registry  *AgentRegistry
	notifier  Notifier
	logger    *slog.Logger

	newClient   ClientFactory
	resolveCard CardResolverFunc
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithClientFactory overrides how transport clients are built.
func WithClientFactory(f ClientFactory) ManagerOption {
	return func(m *Manager) { m.newClient = f }
}

// WithCardResolver overrides how agent cards are fetched.
func WithCardResolver(f CardResolverFunc) ManagerOption {
	return func(m *Manager) { m.resolveCard = f }
}

// WithClientOptions makes the default client factory and card resolver pass
// the given transport options, such as auth header providers.
func WithClientOptions(opts ...client.Option) ManagerOption {
	return func(m *Manager) {
		m.newClient = func(card *a2a.AgentCard) (Sender, error) {
			return client.New(card.URL, opts...)
		}
		m.resolveCard = func(ctx context.Context, baseURL string) (*a2a.AgentCard, error) {
			resolver, err := client.NewCardResolver(baseURL, opts...)
			if err != nil {
				return nil, err
			}
			return resolver.Resolve(ctx)
		}
	}
}

// NewManager wires a manager over the given store, selection, and registry.
func NewManager(store *Store, selection *Selection, registry *AgentRegistry, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:     store,
		selection: selection,
		registry:  registry,
		notifier:  NopNotifier{},
		logger:    slog.Default(),
	}
	m.newClient = func(card *a2a.AgentCard) (Sender, error) {
		return client.New(card.URL)
	}
	m.resolveCard = func(ctx context.Context, baseURL string) (*a2a.AgentCard, error) {
		resolver, err := client.NewCardResolver(baseURL)
		if err != nil {
			return nil, err
		}
		return resolver.Resolve(ctx)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying context store.
func (m *Manager) Store() *Store { return m.store }

// Selection returns the selection tracker.
func (m *Manager) Selection() *Selection { return m.selection }

// Registry returns the agent registry.
func (m *Manager) Registry() *AgentRegistry { return m.registry }

// RegisterAgent fetches the card at baseURL and registers it. The first
// registered agent becomes active.
func (m *Manager) RegisterAgent(ctx context.Context, baseURL string) (*a2a.AgentCard, error) {
	card, err := m.resolveCard(ctx, baseURL)
	if err != nil {
		m.logger.Error("resolving agent card", "url", baseURL, "error", err)
		m.notifier.Error("Could not reach the agent. Check the URL and try again.")
		return nil, err
	}
	m.registry.Add(card)
	if m.registry.Active() == nil {
		m.registry.SetActive(card.URL)
	}
	m.logger.Info("registered agent", "name", card.Name, "url", card.URL, "streaming", card.Capabilities.Streaming)
	return card, nil
}

// SelectAgent points the active agent at the given URL.
func (m *Manager) SelectAgent(url string) {
	m.registry.SetActive(url)
}

// SelectContext activates a context, auto-selects its latest task, and
// re-activates the agent the conversation belongs to.
func (m *Manager) SelectContext(id string) {
	m.store.SetActiveContext(id)
	c := m.store.Context(id)
	m.selection.SelectContext(c)
	if c != nil && c.Agent != nil {
		m.registry.SetActive(c.Agent.URL)
	}
}

// NewChat clears the active context and all selection state so the next
// send starts a fresh conversation.
func (m *Manager) NewChat() {
	m.store.SetActiveContext("")
	m.selection.Clear()
}

// SendMessage runs the full send workflow for the active agent and context:
// optimistic staging, unary or streaming dispatch, context-id promotion,
// and rollback on failure.
func (m *Manager) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return ErrEmptyMessage
	}
	agent := m.registry.Active()
	if agent == nil {
		m.notifier.Error("Select an agent before sending a message.")
		return ErrNoActiveAgent
	}

	active := m.store.ActiveContext()
	isNewContext := active == nil
	var contextID, taskID, prevText string
	if isNewContext {
		contextID = a2a.GenerateID()
		m.store.AddContext(&Context{
			ContextID: contextID,
			Agent:     agent,
			Loading:   true,
		})
		m.store.SetActiveContext(contextID)
		m.selection.SelectContext(m.store.Context(contextID))
	} else {
		if active.Loading {
			return ErrSendInFlight
		}
		contextID = active.ContextID
		prevText = active.MessageText
		if task := active.NonTerminalTask(); task != nil {
			taskID = task.ID
		}
	}

	params := a2a.NewMessageSendParams(text, contextID, taskID)
	m.store.SetLoading(contextID, true)
	m.store.SetMessageText(contextID, "")
	m.store.SetPendingMessage(contextID, params.Message)

	sender, err := m.newClient(agent)
	if err != nil {
		m.failSend(contextID, prevText, isNewContext, false, err)
		return err
	}

	transport := "unary"
	if agent.Capabilities.Streaming {
		transport = "streaming"
		err = m.sendStreaming(ctx, sender, params, contextID, prevText, isNewContext)
	} else {
		err = m.sendUnary(ctx, sender, params, contextID, prevText, isNewContext)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	telemetry.Metrics.SendsTotal.WithLabelValues(transport, outcome).Inc()
	telemetry.Metrics.ActiveContexts.Set(float64(len(m.store.Contexts())))
	return err
}

func (m *Manager) sendUnary(ctx context.Context, sender Sender, params *a2a.MessageSendParams, contextID, prevText string, isNewContext bool) error {
	resp, err := sender.SendMessage(ctx, params)
	if err != nil {
		m.failSend(contextID, prevText, isNewContext, false, err)
		return err
	}
	if resp.Error != nil {
		m.failSend(contextID, prevText, isNewContext, false, resp.Error)
		return resp.Error
	}

	switch result := resp.Result.(type) {
	case *a2a.Task:
		contextID = m.promoteIfNeeded(contextID, result.ContextID)
		m.store.ApplyEvent(contextID, result)
		m.selection.SelectTask(result.ID)
	case *a2a.Message:
		// A message-only reply never produces a task to hold the user
		// message, so the pending message joins the thread alongside it.
		contextID = m.promoteIfNeeded(contextID, result.ContextID)
		m.store.ApplyEvent(contextID, params.Message)
		m.store.ApplyEvent(contextID, result)
	default:
		err := fmt.Errorf("empty result in message/send response")
		m.failSend(contextID, prevText, isNewContext, false, err)
		return err
	}

	m.store.SetPendingMessage(contextID, nil)
	m.store.SetLoading(contextID, false)
	return nil
}

func (m *Manager) sendStreaming(ctx context.Context, sender Sender, params *a2a.MessageSendParams, contextID, prevText string, isNewContext bool) error {
	results, err := sender.SendMessageStream(ctx, params)
	if err != nil {
		m.failSend(contextID, prevText, isNewContext, false, err)
		return err
	}

	confirmed := false
	sawTask := false
	userPlaced := false
	for r := range results {
		if r.Err != nil {
			m.failSend(contextID, prevText, isNewContext, confirmed, r.Err)
			return r.Err
		}

		contextID, confirmed = m.promoteForEvent(contextID, r.Event, confirmed)

		if task, ok := r.Event.(*a2a.Task); ok && !sawTask {
			// The task now owns the user message via its history.
			sawTask = true
			userPlaced = true
			m.store.SetPendingMessage(contextID, nil)
			m.selection.SelectTask(task.ID)
		}
		if !userPlaced {
			// A message-only stream has no task history to carry the user
			// message, so it joins the thread ahead of the reply.
			userPlaced = true
			m.store.ApplyEvent(contextID, params.Message)
		}
		m.store.ApplyEvent(contextID, r.Event)
		telemetry.Metrics.StreamEvents.WithLabelValues(eventKind(r.Event)).Inc()
	}

	if !userPlaced {
		m.store.ApplyEvent(contextID, params.Message)
	}
	m.store.SetPendingMessage(contextID, nil)
	m.store.SetLoading(contextID, false)
	return nil
}

func eventKind(e a2a.StreamEvent) string {
	switch e.(type) {
	case *a2a.Message:
		return a2a.KindMessage
	case *a2a.Task:
		return a2a.KindTask
	case *a2a.TaskStatusUpdateEvent:
		return a2a.KindStatusUpdate
	case *a2a.TaskArtifactUpdateEvent:
		return a2a.KindArtifactUpdate
	default:
		return "unknown"
	}
}

// promoteForEvent renames the context when a stream event carries the
// server-assigned id. Once promoted the context is confirmed and survives a
// later failure.
func (m *Manager) promoteForEvent(contextID string, event a2a.StreamEvent, confirmed bool) (string, bool) {
	var serverID string
	switch e := event.(type) {
	case *a2a.Task:
		serverID = e.ContextID
	case *a2a.Message:
		serverID = e.ContextID
	case *a2a.TaskStatusUpdateEvent:
		serverID = e.ContextID
	case *a2a.TaskArtifactUpdateEvent:
		serverID = e.ContextID
	}
	if serverID == "" || serverID == contextID {
		return contextID, confirmed || serverID == contextID
	}
	return m.promoteIfNeeded(contextID, serverID), true
}

func (m *Manager) promoteIfNeeded(contextID, serverID string) string {
	if serverID == "" || serverID == contextID {
		return contextID
	}
	m.logger.Debug("promoting context", "from", contextID, "to", serverID)
	m.store.PromoteContext(contextID, serverID)
	m.selection.RetargetContext(contextID, serverID)
	return serverID
}

// failSend rolls back a failed send. A never-confirmed temporary context is
// discarded entirely; an existing context keeps its entries and gets the
// staged text back so the user can resend.
func (m *Manager) failSend(contextID, prevText string, isNewContext, confirmed bool, cause error) {
	m.logger.Error("send failed", "contextId", contextID, "error", cause)
	if isNewContext && !confirmed {
		m.store.RemoveContext(contextID)
		m.store.SetActiveContext("")
		m.selection.Clear()
	} else {
		m.store.SetPendingMessage(contextID, nil)
		m.store.SetMessageText(contextID, prevText)
		m.store.SetLoading(contextID, false)
	}
	m.notifier.Error("Failed to send the message. Please try again.")
}
