// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2anet/a2a-ui/a2a"
	"github.com/a2anet/a2a-ui/client"
)

type fakeSender struct {
	response *a2a.SendMessageResponse
	err      error
	events   []client.StreamResult
	params   *a2a.MessageSendParams
}

func (f *fakeSender) SendMessage(ctx context.Context, params *a2a.MessageSendParams) (*a2a.SendMessageResponse, error) {
	f.params = params
	return f.response, f.err
}

func (f *fakeSender) SendMessageStream(ctx context.Context, params *a2a.MessageSendParams) (<-chan client.StreamResult, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	out := make(chan client.StreamResult, len(f.events))
	for _, e := range f.events {
		out <- e
	}
	close(out)
	return out, nil
}

type recordingNotifier struct {
	errors []string
	infos  []string
}

func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

func newTestManager(t *testing.T, sender *fakeSender, streaming bool) (*Manager, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	m := NewManager(NewStore(), NewSelection(), NewAgentRegistry(),
		WithNotifier(notifier),
		WithClientFactory(func(card *a2a.AgentCard) (Sender, error) {
			return sender, nil
		}),
	)
	m.Registry().Add(&a2a.AgentCard{
		Name:         "Test Agent",
		URL:          "https://agent.example.com",
		Version:      "1.0",
		Capabilities: a2a.AgentCapabilities{Streaming: streaming},
	})
	m.Registry().SetActive("https://agent.example.com")
	return m, notifier
}

func taskResponse(task *a2a.Task) *a2a.SendMessageResponse {
	return &a2a.SendMessageResponse{
		JSONRPCMessage: a2a.NewJSONRPCMessage("1"),
		Result:         task,
	}
}

func TestSendMessageUnaryNewChat(t *testing.T) {
	sender := &fakeSender{response: taskResponse(&a2a.Task{
		ID:        "t1",
		ContextID: "c1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateCompleted},
	})}
	m, _ := newTestManager(t, sender, false)

	require.NoError(t, m.SendMessage(context.Background(), "hello"))

	contexts := m.Store().Contexts()
	require.Len(t, contexts, 1)
	c := contexts[0]
	assert.Equal(t, "c1", c.ContextID)
	assert.False(t, c.Loading)
	assert.Nil(t, c.PendingMessage)
	require.Len(t, c.Items, 1)
	task := c.Task("t1")
	require.NotNil(t, task)
	assert.Equal(t, a2a.TaskStateCompleted, task.Status.State)
	assert.True(t, task.Status.State.Terminal())
	assert.Equal(t, "c1", m.Store().ActiveContextID())

	// The request used a temporary context id, not the server's.
	require.NotNil(t, sender.params)
	assert.NotEqual(t, "c1", sender.params.Message.ContextID)
	assert.NotEmpty(t, sender.params.Message.ContextID)
}

func TestSendMessageUnaryMessageReply(t *testing.T) {
	reply := a2a.NewTextMessage(a2a.RoleAgent, "hi there")
	reply.ContextID = "c1"
	sender := &fakeSender{response: &a2a.SendMessageResponse{
		JSONRPCMessage: a2a.NewJSONRPCMessage("1"),
		Result:         reply,
	}}
	m, _ := newTestManager(t, sender, false)

	require.NoError(t, m.SendMessage(context.Background(), "hello"))

	c := m.Store().Context("c1")
	require.NotNil(t, c)
	// The pending user message joins the thread alongside the reply.
	require.Len(t, c.Items, 2)
	assert.Equal(t, a2a.RoleUser, c.Items[0].(*a2a.Message).Role)
	assert.Equal(t, a2a.RoleAgent, c.Items[1].(*a2a.Message).Role)
	assert.Nil(t, c.PendingMessage)
	assert.False(t, c.Loading)
}

func TestSendMessageContinuesNonTerminalTask(t *testing.T) {
	sender := &fakeSender{response: taskResponse(&a2a.Task{
		ID:        "t1",
		ContextID: "c1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateInputRequired},
	})}
	m, _ := newTestManager(t, sender, false)

	require.NoError(t, m.SendMessage(context.Background(), "first"))
	require.NoError(t, m.SendMessage(context.Background(), "second"))

	// The second send continues the live task.
	assert.Equal(t, "t1", sender.params.Message.TaskID)
	assert.Equal(t, "c1", sender.params.Message.ContextID)
}

func TestSendMessageStreamingReconciliation(t *testing.T) {
	sender := &fakeSender{events: []client.StreamResult{
		{Event: &a2a.Task{ID: "t1", ContextID: "c1", Status: a2a.TaskStatus{State: a2a.TaskStateWorking}}},
		{Event: &a2a.TaskArtifactUpdateEvent{TaskID: "t1", Artifact: &a2a.Artifact{ArtifactID: "a1"}}},
		{Event: &a2a.TaskStatusUpdateEvent{TaskID: "t1", Final: true, Status: a2a.TaskStatus{State: a2a.TaskStateCompleted}}},
	}}
	m, _ := newTestManager(t, sender, true)

	require.NoError(t, m.SendMessage(context.Background(), "do work"))

	// The temporary context was promoted to the server id.
	contexts := m.Store().Contexts()
	require.Len(t, contexts, 1)
	assert.Equal(t, "c1", contexts[0].ContextID)
	assert.Equal(t, "c1", m.Store().ActiveContextID())
	assert.Equal(t, "c1", m.Selection().ContextID())
	assert.Equal(t, "t1", m.Selection().TaskID())

	task := contexts[0].Task("t1")
	require.NotNil(t, task)
	assert.Equal(t, a2a.TaskStateCompleted, task.Status.State)
	require.Len(t, task.Artifacts, 1)
	assert.Equal(t, "a1", task.Artifacts[0].ArtifactID)
	assert.False(t, contexts[0].Loading)
	assert.Nil(t, contexts[0].PendingMessage)
}

func TestSendMessageStreamingMessageReply(t *testing.T) {
	reply := a2a.NewTextMessage(a2a.RoleAgent, "hi there")
	reply.ContextID = "c1"
	sender := &fakeSender{events: []client.StreamResult{{Event: reply}}}
	m, _ := newTestManager(t, sender, true)

	require.NoError(t, m.SendMessage(context.Background(), "hello"))

	c := m.Store().Context("c1")
	require.NotNil(t, c)
	// No task arrived to carry the user message, so it precedes the reply.
	require.Len(t, c.Items, 2)
	assert.Equal(t, a2a.RoleUser, c.Items[0].(*a2a.Message).Role)
	assert.Equal(t, a2a.RoleAgent, c.Items[1].(*a2a.Message).Role)
	assert.Nil(t, c.PendingMessage)
	assert.False(t, c.Loading)
}

func TestSendMessageFailureRollsBackNewChat(t *testing.T) {
	sender := &fakeSender{err: client.NewHTTPError(502, "bad gateway")}
	m, notifier := newTestManager(t, sender, false)

	err := m.SendMessage(context.Background(), "hello")
	require.Error(t, err)

	// Full rollback: no temporary context, no selection.
	assert.Empty(t, m.Store().Contexts())
	assert.Empty(t, m.Store().ActiveContextID())
	assert.Empty(t, m.Selection().ContextID())
	assert.Len(t, notifier.errors, 1)
}

func TestSendMessageFailureRestoresExistingContext(t *testing.T) {
	sender := &fakeSender{response: taskResponse(&a2a.Task{
		ID:        "t1",
		ContextID: "c1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateCompleted},
	})}
	m, notifier := newTestManager(t, sender, false)
	require.NoError(t, m.SendMessage(context.Background(), "first"))

	m.Store().SetMessageText("c1", "second attempt")
	sender.response = nil
	sender.err = client.NewHTTPError(500, "boom")

	err := m.SendMessage(context.Background(), "second attempt")
	require.Error(t, err)

	c := m.Store().Context("c1")
	require.NotNil(t, c)
	assert.Equal(t, "second attempt", c.MessageText)
	assert.Nil(t, c.PendingMessage)
	assert.False(t, c.Loading)
	// The confirmed context and its entries survive.
	assert.Len(t, c.Items, 1)
	assert.Len(t, notifier.errors, 1)
}

func TestSendMessageRPCErrorFailsSend(t *testing.T) {
	sender := &fakeSender{response: &a2a.SendMessageResponse{
		JSONRPCMessage: a2a.NewJSONRPCMessage("1"),
		Error:          &a2a.JSONRPCError{Code: a2a.ErrorCodeInvalidParams, Message: "bad params"},
	}}
	m, notifier := newTestManager(t, sender, false)

	err := m.SendMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.Empty(t, m.Store().Contexts())
	assert.Len(t, notifier.errors, 1)
}

func TestSendMessageMidStreamErrorKeepsConfirmedContext(t *testing.T) {
	sender := &fakeSender{events: []client.StreamResult{
		{Event: &a2a.Task{ID: "t1", ContextID: "c1", Status: a2a.TaskStatus{State: a2a.TaskStateWorking}}},
		{Err: client.NewNetworkError("connection reset", nil)},
	}}
	m, _ := newTestManager(t, sender, true)

	err := m.SendMessage(context.Background(), "do work")
	require.Error(t, err)

	// The context was confirmed by the server before the error, so its
	// accumulated state survives.
	c := m.Store().Context("c1")
	require.NotNil(t, c)
	assert.NotNil(t, c.Task("t1"))
	assert.False(t, c.Loading)
}

func TestSendMessageRejectsConcurrentSend(t *testing.T) {
	sender := &fakeSender{response: taskResponse(&a2a.Task{
		ID:        "t1",
		ContextID: "c1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateCompleted},
	})}
	m, _ := newTestManager(t, sender, false)
	require.NoError(t, m.SendMessage(context.Background(), "first"))

	m.Store().SetLoading("c1", true)
	err := m.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrSendInFlight)
}

func TestSendMessageRequiresAgentAndText(t *testing.T) {
	m := NewManager(NewStore(), NewSelection(), NewAgentRegistry())
	assert.ErrorIs(t, m.SendMessage(context.Background(), "hi"), ErrNoActiveAgent)
	assert.ErrorIs(t, m.SendMessage(context.Background(), ""), ErrEmptyMessage)
}

func TestNewChatClearsSelection(t *testing.T) {
	sender := &fakeSender{response: taskResponse(&a2a.Task{
		ID:        "t1",
		ContextID: "c1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateCompleted},
	})}
	m, _ := newTestManager(t, sender, false)
	require.NoError(t, m.SendMessage(context.Background(), "hello"))

	m.NewChat()
	assert.Empty(t, m.Store().ActiveContextID())
	assert.Empty(t, m.Selection().ContextID())
	// The settled conversation itself is kept.
	assert.Len(t, m.Store().Contexts(), 1)
}

func TestRegisterAgent(t *testing.T) {
	m := NewManager(NewStore(), NewSelection(), NewAgentRegistry(),
		WithCardResolver(func(ctx context.Context, baseURL string) (*a2a.AgentCard, error) {
			return &a2a.AgentCard{Name: "Resolved", URL: baseURL, Version: "1.0"}, nil
		}),
	)

	card, err := m.RegisterAgent(context.Background(), "https://a.example.com")
	require.NoError(t, err)
	assert.Equal(t, "Resolved", card.Name)

	// The first registered agent becomes active.
	active := m.Registry().Active()
	require.NotNil(t, active)
	assert.Equal(t, "https://a.example.com", active.URL)
}
