package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TaskCompleteProductSpecs is the only task the gateway accepts.
const TaskCompleteProductSpecs = "complete_product_specs"

// Sampling parameters sent with every completion call.
const (
	SystemInstruction = "You output strict JSON only."
	Temperature       = float32(0.2)
)

// MissingCredentialNote is returned in notes when no API key is configured.
const MissingCredentialNote = "OPENAI_API_KEY not set; returning empty completion."

// CompletionRequest is the body of POST /api/v1/ai.
type CompletionRequest struct {
	Task  string         `json:"task" binding:"required"`
	Input map[string]any `json:"input" binding:"required"`
}

// SpecPair is one product attribute.
type SpecPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompletionResponse is what the gateway returns. Raw is only set when the
// model content could not be read as a structured response.
type CompletionResponse struct {
	SpecsFilled []SpecPair `json:"specs_filled"`
	Notes       string     `json:"notes,omitempty"`
	Raw         string     `json:"raw,omitempty"`
}

// ContentKind tells which variant DecodeContent produced.
type ContentKind int

const (
	ContentStructured ContentKind = iota
	ContentRaw
)

// DecodedContent is the result of reading the model's message content.
type DecodedContent struct {
	Kind     ContentKind
	Response CompletionResponse
	Raw      string
}

// ToResponse flattens either variant into the wire response.
func (d DecodedContent) ToResponse() CompletionResponse {
	if d.Kind == ContentRaw {
		return CompletionResponse{Raw: d.Raw}
	}
	return d.Response
}

type contentPayload struct {
	SpecsFilled []SpecPair `json:"specs_filled"`
	Notes       *string    `json:"notes"`
}

// DecodeContent parses the message content of a completion. Content that is
// not a JSON object of the expected shape comes back as ContentRaw.
func DecodeContent(content string) DecodedContent {
	body := stripCodeFence(content)
	if !strings.HasPrefix(body, "{") {
		return DecodedContent{Kind: ContentRaw, Raw: content}
	}

	var payload contentPayload
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(&payload); err != nil || dec.More() {
		return DecodedContent{Kind: ContentRaw, Raw: content}
	}

	resp := CompletionResponse{SpecsFilled: payload.SpecsFilled}
	if payload.Notes != nil {
		resp.Notes = *payload.Notes
	}
	return DecodedContent{Kind: ContentStructured, Response: resp}
}

// Models sometimes wrap JSON in a markdown code block despite the
// response_format hint.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
