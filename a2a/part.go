// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Part kind discriminators.
const (
	PartKindText = "text"
	PartKindFile = "file"
	PartKindData = "data"
)

// Part is the closed union over the content variants of a message or
// artifact: TextPart, FilePart, or DataPart. Parts are never mutated after
// creation.
type Part interface {
	// PartKind returns the wire discriminator for the concrete variant.
	PartKind() string

	part() // seals the union
}

// TextPart carries plain text content.
type TextPart struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

func (*TextPart) PartKind() string { return PartKindText }
func (*TextPart) part()            {}

// MarshalJSON adds the kind discriminator.
func (p *TextPart) MarshalJSON() ([]byte, error) {
	type alias TextPart
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: PartKindText, alias: (*alias)(p)})
}

// FileWithBytes is file content embedded as base64-encoded bytes.
type FileWithBytes struct {
	Bytes    string `json:"bytes"`
	MimeType string `json:"mimeType,omitzero"`
	Name     string `json:"name,omitzero"`
}

// FileWithURI is file content referenced by URI.
type FileWithURI struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitzero"`
	Name     string `json:"name,omitzero"`
}

// FileContent holds exactly one of an embedded or URI-referenced file.
type FileContent struct {
	Bytes *FileWithBytes
	URI   *FileWithURI
}

// MarshalJSON emits whichever variant is populated.
func (f FileContent) MarshalJSON() ([]byte, error) {
	switch {
	case f.Bytes != nil:
		return json.Marshal(f.Bytes)
	case f.URI != nil:
		return json.Marshal(f.URI)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON picks the variant based on the fields present.
func (f *FileContent) UnmarshalJSON(data []byte) error {
	var file struct {
		Bytes *string `json:"bytes"`
		URI   *string `json:"uri"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}
	switch {
	case file.Bytes != nil:
		f.Bytes = &FileWithBytes{}
		return json.Unmarshal(data, f.Bytes)
	case file.URI != nil:
		f.URI = &FileWithURI{}
		return json.Unmarshal(data, f.URI)
	default:
		return fmt.Errorf("file content has neither bytes nor uri")
	}
}

// FilePart carries a file, either embedded or referenced by URI.
type FilePart struct {
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

func (*FilePart) PartKind() string { return PartKindFile }
func (*FilePart) part()            {}

// MarshalJSON adds the kind discriminator.
func (p *FilePart) MarshalJSON() ([]byte, error) {
	type alias FilePart
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: PartKindFile, alias: (*alias)(p)})
}

// DataPart carries structured JSON data.
type DataPart struct {
	Data     map[string]any `json:"data"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

func (*DataPart) PartKind() string { return PartKindData }
func (*DataPart) part()            {}

// MarshalJSON adds the kind discriminator.
func (p *DataPart) MarshalJSON() ([]byte, error) {
	type alias DataPart
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: PartKindData, alias: (*alias)(p)})
}

// UnmarshalPart decodes a single part, dispatching on its kind field.
func UnmarshalPart(data []byte) (Part, error) {
	var kind struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return nil, fmt.Errorf("unmarshaling part kind: %w", err)
	}

	switch kind.Kind {
	case PartKindText:
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshaling text part: %w", err)
		}
		return &p, nil
	case PartKindFile:
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshaling file part: %w", err)
		}
		return &p, nil
	case PartKindData:
		var p DataPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshaling data part: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unknown part kind: %q", kind.Kind)
	}
}

func unmarshalParts(raw []jsontext.Value) ([]Part, error) {
	if raw == nil {
		return nil, nil
	}
	parts := make([]Part, 0, len(raw))
	for i, r := range raw {
		p, err := UnmarshalPart(r)
		if err != nil {
			return nil, fmt.Errorf("part at index %d: %w", i, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}
