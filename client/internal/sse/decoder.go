// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package sse implements a line-oriented decoder for Server-Sent Event
// streams as produced by A2A message/stream responses.
package sse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
)

// Sentinel data payload that terminates a stream.
const doneSentinel = "[DONE]"

// ErrDone is returned by Decode when the stream emits the [DONE] sentinel.
var ErrDone = fmt.Errorf("sse: stream done")

// Event represents a single Server-Sent Event.
type Event struct {
	Type  string
	Data  string
	ID    string
	Retry int
}

// Decoder decodes Server-Sent Events from an io.Reader. It is a single
// logical cursor over one response body and must not be shared across
// concurrent readers.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a new SSE decoder.
func NewDecoder(reader io.Reader) *Decoder {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	return &Decoder{scanner: scanner}
}

// Decode returns the next event from the stream. It returns io.EOF when
// the stream closes and ErrDone when the [DONE] sentinel is seen.
func (d *Decoder) Decode() (*Event, error) {
	event := &Event{}

	flush := func() (*Event, bool) {
		if event.Data == "" && event.Type == "" {
			return nil, false
		}
		if event.Data == doneSentinel {
			return nil, true
		}
		return event, false
	}

	for d.scanner.Scan() {
		line := d.scanner.Text()
		line = strings.TrimRight(line, "\r")

		// Empty line terminates the event.
		if line == "" {
			if ev, done := flush(); done {
				return nil, ErrDone
			} else if ev != nil {
				return ev, nil
			}
			continue
		}

		// Comment lines are ignored.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			event.Type = value
		case "data":
			if event.Data != "" {
				event.Data += "\n"
			}
			event.Data += value
		case "id":
			event.ID = value
		case "retry":
			var retry int
			if _, err := fmt.Sscanf(value, "%d", &retry); err == nil {
				event.Retry = retry
			}
		}
	}

	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("sse: scanner error: %w", err)
	}

	// Flush a final event not terminated by a blank line.
	if ev, done := flush(); done {
		return nil, ErrDone
	} else if ev != nil {
		return ev, nil
	}
	return nil, io.EOF
}

// DecodeJSON decodes the next event and unmarshals its data payload into v.
// Sentinel and stream-end conditions are reported as with Decode.
func (d *Decoder) DecodeJSON(v any) error {
	event, err := d.Decode()
	if err != nil {
		return err
	}
	if event.Data == "" {
		return fmt.Errorf("sse: event has no data")
	}
	if err := json.Unmarshal([]byte(event.Data), v); err != nil {
		return fmt.Errorf("sse: unmarshaling event data: %w", err)
	}
	return nil
}
