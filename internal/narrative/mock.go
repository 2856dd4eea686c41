package narrative

import "context"

// MockGenerator is a canned-response generator for tests and demos.
type MockGenerator struct {
	Response string
	Err      error

	// Prompts records every prompt passed to Generate.
	Prompts []string
}

// Generate implements Generator.Generate.
func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Name implements Generator.Name.
func (m *MockGenerator) Name() string {
	return "mock"
}
