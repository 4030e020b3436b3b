package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. It returns canned responses in
// FIFO order and records all requests. In offline mode an empty queue
// yields a placeholder document built from the request schema instead of
// an error.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	offline   bool
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
// Once they are used up, Generate fails with ErrProviderUnavailable.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider creates a MockProvider that never fails. It backs the
// "mock" provider setting so the review flow can be tried without an API key.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{offline: true}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if !m.offline {
			return nil, &ErrProviderUnavailable{}
		}
		content, err := placeholder(req.Schema)
		if err != nil {
			return nil, err
		}
		return &Response{Content: content, Model: "mock", StopReason: StopEnd}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// placeholder returns the smallest document satisfying schema, or an empty
// JSON string without one.
func placeholder(schema *Schema) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(`""`), nil
	}
	raw, err := json.Marshal(sample(schema.Definition))
	if err != nil {
		return nil, fmt.Errorf("mock: %w", err)
	}
	return raw, nil
}

// sample picks a value for one schema node: the first enum value, the
// minimum of a number, and every property of an object.
func sample(def map[string]any) any {
	if enum := stringList(def["enum"]); len(enum) > 0 {
		return enum[0]
	}
	switch def["type"] {
	case "object":
		props, _ := def["properties"].(map[string]any)
		obj := make(map[string]any, len(props))
		for k, v := range props {
			sub, _ := v.(map[string]any)
			obj[k] = sample(sub)
		}
		return obj
	case "array":
		return []any{}
	case "number", "integer":
		if v, ok := number(def["minimum"]); ok {
			return v
		}
		return 0
	case "boolean":
		return false
	default:
		return ""
	}
}
