package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager manages LLM clients keyed by purpose. A purpose without its own
// client falls back to the chat client, so a single configured model serves
// every boundary.
type Manager struct {
	clients map[Purpose]Client
	configs map[Purpose]Config
	mu      sync.RWMutex
}

// NewManager creates a new LLM manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[Purpose]Client),
		configs: make(map[Purpose]Config),
	}
}

// RegisterLLM registers an LLM for a specific purpose
func (m *Manager) RegisterLLM(purpose Purpose, config Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var client Client
	var err error

	switch config.Provider {
	case "ollama":
		client, err = NewOllamaClient(config)
	default:
		return fmt.Errorf("unsupported provider: %s", config.Provider)
	}

	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", config.Provider, err)
	}

	m.configs[purpose] = config
	m.clients[purpose] = client
	return nil
}

// RegisterClient registers a pre-built client for a purpose. Used by tests
// and by callers that construct clients out of band.
func (m *Manager) RegisterClient(purpose Purpose, client Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[purpose] = client
}

// GetClient returns the LLM client for a specific purpose.
// If the requested client is not registered, it falls back to the chat client.
func (m *Manager) GetClient(purpose Purpose) (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if client, ok := m.clients[purpose]; ok {
		return client, nil
	}

	if purpose != PurposeChat {
		if chatClient, ok := m.clients[PurposeChat]; ok {
			return chatClient, nil
		}
	}

	return nil, fmt.Errorf("no LLM available for purpose: %s", purpose)
}

// Generate sends a request to the appropriate LLM based on purpose,
// falling back to the chat client when the purposed one is unreachable.
func (m *Manager) Generate(ctx context.Context, purpose Purpose, req Request) (*Response, error) {
	client, err := m.GetClient(purpose)
	if err != nil {
		return nil, err
	}

	if !client.IsAvailable(ctx) {
		if purpose != PurposeChat {
			chatClient, err := m.GetClient(PurposeChat)
			if err == nil && chatClient.IsAvailable(ctx) {
				client = chatClient
			} else {
				return nil, fmt.Errorf("LLM for %s is not available and no fallback found", purpose)
			}
		} else {
			return nil, fmt.Errorf("chat LLM is not available")
		}
	}

	return client.Generate(ctx, req)
}

// IsAvailable checks if an LLM for the given purpose is available
func (m *Manager) IsAvailable(purpose Purpose) bool {
	m.mu.RLock()
	client, ok := m.clients[purpose]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.IsAvailable(ctx)
}

// ListAvailable returns the purposes that have a responding LLM
func (m *Manager) ListAvailable() []Purpose {
	m.mu.RLock()
	defer m.mu.RUnlock()

	available := make([]Purpose, 0, len(m.clients))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for purpose, client := range m.clients {
		if client.IsAvailable(ctx) {
			available = append(available, purpose)
		}
	}

	return available
}

// GetConfig returns the configuration for a specific purpose
func (m *Manager) GetConfig(purpose Purpose) (Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	config, ok := m.configs[purpose]
	return config, ok
}
