// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Standard JSON-RPC 2.0 error codes.
const (
	ErrorCodeParse          = -32700
	ErrorCodeInvalidRequest = -32600
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInvalidParams  = -32602
	ErrorCodeInternal       = -32603
)

// A2A-specific error codes.
const (
	ErrorCodeTaskNotFound                 = -32001
	ErrorCodeTaskNotCancelable            = -32002
	ErrorCodePushNotificationNotSupported = -32003
	ErrorCodeUnsupportedOperation         = -32004
	ErrorCodeContentTypeNotSupported      = -32005
)

// JSONRPCMessage is the base structure for all JSON-RPC 2.0 messages.
type JSONRPCMessage struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID correlates a response with its request. String, number, or null.
	ID any `json:"id,omitzero"`
}

// NewJSONRPCMessage creates a new JSONRPCMessage with the given id.
func NewJSONRPCMessage(id any) JSONRPCMessage {
	return JSONRPCMessage{JSONRPC: "2.0", ID: id}
}

// JSONRPCError represents a JSON-RPC 2.0 error object. It is returned as
// data inside an otherwise well-formed envelope; callers decide whether to
// surface it.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitzero"`
}

// Error implements the error interface.
func (e *JSONRPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error: code = %d, message = %s, data = %v", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error: code = %d, message = %s", e.Code, e.Message)
}

// MessageSendConfiguration carries optional delivery preferences for a
// send.
type MessageSendConfiguration struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitzero"`
	Blocking               bool                    `json:"blocking,omitzero"`
	HistoryLength          int                     `json:"historyLength,omitzero"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitzero"`
}

// PushNotificationConfig describes a push notification endpoint; carried
// for card and configuration fidelity, not consumed by this client.
type PushNotificationConfig struct {
	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitzero"`
	ID             string                              `json:"id,omitzero"`
	Token          string                              `json:"token,omitzero"`
	URL            string                              `json:"url"`
}

// PushNotificationAuthenticationInfo describes authentication for push
// notification delivery.
type PushNotificationAuthenticationInfo struct {
	Credentials string   `json:"credentials,omitzero"`
	Schemes     []string `json:"schemes"`
}

// MessageSendParams are the parameters of message/send and message/stream.
type MessageSendParams struct {
	Configuration *MessageSendConfiguration `json:"configuration,omitzero"`
	Message       *Message                  `json:"message"`
	Metadata      map[string]any            `json:"metadata,omitzero"`
}

// NewMessageSendParams builds send parameters for a user text message.
// The task id is omitted when empty, which asks the agent to start a new
// task rather than continue an existing one.
func NewMessageSendParams(text, contextID, taskID string) *MessageSendParams {
	msg := NewTextMessage(RoleUser, text)
	msg.ContextID = contextID
	msg.TaskID = taskID
	return &MessageSendParams{Message: msg}
}

// SendMessageRequest is the JSON-RPC request for message/send and
// message/stream.
type SendMessageRequest struct {
	JSONRPCMessage

	Method string             `json:"method"`
	Params *MessageSendParams `json:"params"`
}

// NewSendMessageRequest creates a message/send request.
func NewSendMessageRequest(id any, params *MessageSendParams) *SendMessageRequest {
	return &SendMessageRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodMessageSend,
		Params:         params,
	}
}

// NewStreamMessageRequest creates a message/stream request.
func NewStreamMessageRequest(id any, params *MessageSendParams) *SendMessageRequest {
	return &SendMessageRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodMessageStream,
		Params:         params,
	}
}

// SendMessageResult is the closed union over the payload of a successful
// unary send: a Task or a Message, discriminated by kind.
type SendMessageResult interface {
	ConversationItem
}

// SendMessageResponse is the JSON-RPC response to message/send. Exactly one
// of Result and Error is populated; an Error is application-level data for
// the caller to branch on, not a transport failure.
type SendMessageResponse struct {
	JSONRPCMessage

	Result SendMessageResult `json:"result,omitzero"`
	Error  *JSONRPCError     `json:"error,omitzero"`
}

// UnmarshalJSON decodes the polymorphic result union.
func (r *SendMessageResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		JSONRPC string         `json:"jsonrpc"`
		ID      any            `json:"id"`
		Result  jsontext.Value `json:"result"`
		Error   *JSONRPCError  `json:"error"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.JSONRPC = aux.JSONRPC
	r.ID = aux.ID
	r.Error = aux.Error
	if len(aux.Result) == 0 || string(aux.Result) == "null" {
		return nil
	}

	var kind struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(aux.Result, &kind); err != nil {
		return fmt.Errorf("unmarshaling result kind: %w", err)
	}
	switch kind.Kind {
	case KindTask:
		var t Task
		if err := json.Unmarshal(aux.Result, &t); err != nil {
			return fmt.Errorf("unmarshaling task result: %w", err)
		}
		r.Result = &t
	case KindMessage:
		var m Message
		if err := json.Unmarshal(aux.Result, &m); err != nil {
			return fmt.Errorf("unmarshaling message result: %w", err)
		}
		r.Result = &m
	default:
		return fmt.Errorf("unknown send result kind: %q", kind.Kind)
	}
	return nil
}
