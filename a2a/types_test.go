// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestUnmarshalPart(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Part
		wantErr bool
	}{
		{
			name: "text part",
			data: `{"kind":"text","text":"hello"}`,
			want: &TextPart{Text: "hello"},
		},
		{
			name: "data part",
			data: `{"kind":"data","data":{"answer":"42"}}`,
			want: &DataPart{Data: map[string]any{"answer": "42"}},
		},
		{
			name: "file part with uri",
			data: `{"kind":"file","file":{"uri":"https://example.com/report.pdf","mimeType":"application/pdf"}}`,
			want: &FilePart{File: FileContent{URI: &FileWithURI{URI: "https://example.com/report.pdf", MimeType: "application/pdf"}}},
		},
		{
			name: "file part with bytes",
			data: `{"kind":"file","file":{"bytes":"aGVsbG8=","name":"hello.txt"}}`,
			want: &FilePart{File: FileContent{Bytes: &FileWithBytes{Bytes: "aGVsbG8=", Name: "hello.txt"}}},
		},
		{
			name:    "unknown kind",
			data:    `{"kind":"video","url":"x"}`,
			wantErr: true,
		},
		{
			name:    "file part with neither variant",
			data:    `{"kind":"file","file":{}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalPart([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalPart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UnmarshalPart() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartMarshalAddsKind(t *testing.T) {
	data, err := json.Marshal(&TextPart{Text: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["kind"] != "text" {
		t.Errorf("marshaled text part kind = %v, want %q", raw["kind"], "text")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msg := NewTextMessage(RoleUser, "what is the weather")
	msg.ContextID = "ctx-1"
	msg.TaskID = "task-1"

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(msg, &got); diff != "" {
		t.Errorf("message round trip mismatch (-want +got):\n%s", diff)
	}
	if got.Text() != "what is the weather" {
		t.Errorf("Text() = %q", got.Text())
	}
}

func TestMessageToolCallMetadata(t *testing.T) {
	call := &Message{
		MessageID: "m1",
		Role:      RoleAgent,
		Parts:     []Part{&TextPart{Text: "calling"}},
		Metadata: map[string]any{
			MetadataKeyType:       MetadataTypeToolCall,
			MetadataKeyToolCallID: "tc-1",
		},
	}
	if !call.IsToolCall() || call.IsToolCallResult() {
		t.Errorf("IsToolCall() = %v, IsToolCallResult() = %v", call.IsToolCall(), call.IsToolCallResult())
	}
	if call.ToolCallID() != "tc-1" {
		t.Errorf("ToolCallID() = %q, want %q", call.ToolCallID(), "tc-1")
	}

	plain := NewTextMessage(RoleUser, "hi")
	if plain.IsToolCall() || plain.ToolCallID() != "" {
		t.Error("plain message should not look like a tool call")
	}
}

func TestTaskStateTerminal(t *testing.T) {
	terminal := []TaskState{TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected, TaskStateUnknown}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}
	live := []TaskState{TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired, TaskStateAuthRequired}
	for _, s := range live {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
}

func TestUnmarshalStreamEvent(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantKind string
		wantErr  bool
	}{
		{
			name:     "bare task",
			data:     `{"kind":"task","id":"t1","contextId":"c1","status":{"state":"working"}}`,
			wantKind: KindTask,
		},
		{
			name:     "bare message",
			data:     `{"kind":"message","messageId":"m1","role":"agent","parts":[{"kind":"text","text":"hi"}]}`,
			wantKind: KindMessage,
		},
		{
			name:     "status update in rpc envelope",
			data:     `{"jsonrpc":"2.0","id":"1","result":{"kind":"status-update","taskId":"t1","status":{"state":"completed"}}}`,
			wantKind: KindStatusUpdate,
		},
		{
			name:     "artifact update",
			data:     `{"kind":"artifact-update","taskId":"t1","artifact":{"artifactId":"a1","parts":[{"kind":"text","text":"out"}]}}`,
			wantKind: KindArtifactUpdate,
		},
		{
			name:    "envelope error",
			data:    `{"jsonrpc":"2.0","id":"1","error":{"code":-32603,"message":"boom"}}`,
			wantErr: true,
		},
		{
			name:    "unknown kind",
			data:    `{"kind":"heartbeat"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalStreamEvent([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalStreamEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var kind string
			switch got.(type) {
			case *Message:
				kind = KindMessage
			case *Task:
				kind = KindTask
			case *TaskStatusUpdateEvent:
				kind = KindStatusUpdate
			case *TaskArtifactUpdateEvent:
				kind = KindArtifactUpdate
			}
			if kind != tt.wantKind {
				t.Errorf("decoded event kind = %q, want %q", kind, tt.wantKind)
			}
		})
	}
}

func TestUnmarshalStreamEventEnvelopeError(t *testing.T) {
	_, err := UnmarshalStreamEvent([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32001,"message":"task not found"}}`))
	var rpcErr *JSONRPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error = %v, want *JSONRPCError", err)
	}
	if rpcErr.Code != ErrorCodeTaskNotFound {
		t.Errorf("code = %d, want %d", rpcErr.Code, ErrorCodeTaskNotFound)
	}
}

func TestSendMessageResponseUnmarshal(t *testing.T) {
	t.Run("task result", func(t *testing.T) {
		data := `{"jsonrpc":"2.0","id":"1","result":{"kind":"task","id":"t1","contextId":"c1","status":{"state":"completed"}}}`
		var resp SendMessageResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			t.Fatal(err)
		}
		task, ok := resp.Result.(*Task)
		if !ok {
			t.Fatalf("result type = %T, want *Task", resp.Result)
		}
		if task.ID != "t1" || task.Status.State != TaskStateCompleted {
			t.Errorf("task = %+v", task)
		}
	})

	t.Run("message result", func(t *testing.T) {
		data := `{"jsonrpc":"2.0","id":"1","result":{"kind":"message","messageId":"m1","role":"agent","parts":[{"kind":"text","text":"hi"}]}}`
		var resp SendMessageResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			t.Fatal(err)
		}
		if _, ok := resp.Result.(*Message); !ok {
			t.Fatalf("result type = %T, want *Message", resp.Result)
		}
	})

	t.Run("error result", func(t *testing.T) {
		data := `{"jsonrpc":"2.0","id":"1","error":{"code":-32602,"message":"bad params"}}`
		var resp SendMessageResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Result != nil {
			t.Errorf("result = %v, want nil", resp.Result)
		}
		if resp.Error == nil || resp.Error.Code != ErrorCodeInvalidParams {
			t.Errorf("error = %+v", resp.Error)
		}
	})
}

func TestAgentCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    *AgentCard
		wantErr bool
	}{
		{name: "nil card", card: nil, wantErr: true},
		{
			name:    "missing name",
			card:    &AgentCard{URL: "https://example.com", Version: "1.0"},
			wantErr: true,
		},
		{
			name:    "missing url",
			card:    &AgentCard{Name: "Test Agent", Version: "1.0"},
			wantErr: true,
		},
		{
			name:    "missing version",
			card:    &AgentCard{Name: "Test Agent", URL: "https://example.com"},
			wantErr: true,
		},
		{
			name: "valid card",
			card: &AgentCard{Name: "Test Agent", URL: "https://example.com", Version: "1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMessageSendParams(t *testing.T) {
	params := NewMessageSendParams("hello", "ctx-1", "")
	if params.Message.ContextID != "ctx-1" {
		t.Errorf("contextId = %q", params.Message.ContextID)
	}
	if params.Message.TaskID != "" {
		t.Errorf("taskId = %q, want empty for a new task", params.Message.TaskID)
	}
	if params.Message.Role != RoleUser {
		t.Errorf("role = %q", params.Message.Role)
	}
	if params.Message.MessageID == "" {
		t.Error("messageId not assigned")
	}

	data, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"taskId"`) {
		t.Errorf("empty taskId should be omitted from %s", data)
	}
}
