// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package sse

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	input := "" +
		": keepalive comment\n" +
		"event: update\n" +
		"id: 7\n" +
		"data: {\"a\":1}\n" +
		"\n" +
		"data: line one\n" +
		"data: line two\n" +
		"\n" +
		"data: [DONE]\n" +
		"\n"

	d := NewDecoder(strings.NewReader(input))

	first, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}
	want := &Event{Type: "update", ID: "7", Data: `{"a":1}`}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("first event mismatch (-want +got):\n%s", diff)
	}

	second, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if second.Data != "line one\nline two" {
		t.Errorf("multiline data = %q", second.Data)
	}

	if _, err := d.Decode(); !errors.Is(err, ErrDone) {
		t.Errorf("err = %v, want ErrDone", err)
	}
}

func TestDecodeEOFWithoutSentinel(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: last\n\n"))
	if _, err := d.Decode(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Decode(); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestDecodeCRLF(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: hello\r\n\r\n"))
	ev, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Data != "hello" {
		t.Errorf("data = %q", ev.Data)
	}
}

func TestDecodeFinalEventWithoutBlankLine(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: tail"))
	ev, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Data != "tail" {
		t.Errorf("data = %q", ev.Data)
	}
	if _, err := d.Decode(); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: {\"state\":\"working\",\"n\":3}\n\n"))
	var payload struct {
		State string `json:"state"`
		N     int    `json:"n"`
	}
	if err := d.DecodeJSON(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.State != "working" || payload.N != 3 {
		t.Errorf("payload = %+v", payload)
	}
}
