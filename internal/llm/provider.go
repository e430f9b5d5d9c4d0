package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive text or structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Every EduVantage call is
	// single-turn, so this holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// Model overrides the provider's configured model for this request.
	// Friendly names are resolved the same way as in the config.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64

	// TopP is the nucleus-sampling mass. Zero leaves the default.
	TopP float64

	// TopK limits sampling to the K most likely tokens. Zero leaves the
	// default. Providers without top-k support ignore it.
	TopK int

	// Search enables web-search grounding when the provider supports it.
	// Grounding citations are returned in Response.Sources.
	Search bool
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Images are appended after the text part, in order.
	Images []Image
}

// Image is an inline image part carried with a message.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL encodes the image as "data:<mime>;base64,<payload>".
func (img Image) DataURL() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as schema name for OpenAI and as
	// the compiled-schema cache key). Kebab-case, e.g. "study-plan".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it is the raw
	// text of the response.
	Content json.RawMessage

	// Sources lists grounding citations, in the order the provider
	// returned them. Empty unless the request enabled Search.
	Sources []Source

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the response content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Source is one grounding citation.
type Source struct {
	URI   string
	Title string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
