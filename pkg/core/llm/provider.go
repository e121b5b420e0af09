// Package llm hosts the model providers behind the insight and sentiment
// collaborators. Providers are interchangeable; the Manager picks one per
// role from config/models.yaml.
package llm

import "context"

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Config mirrors config/models.yaml.
type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Roles          map[string]RoleConfig `yaml:"roles"`
}

// RoleConfig optionally pins a role ("insight", "sentiment") to a specific
// provider and model.
type RoleConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Manager resolves the provider to use for a given role.
type Manager struct {
	config    Config
	providers map[string]Provider
}

// NewManager builds a Manager over the built-in provider set.
func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]Provider{
			"gemini":   &GeminiProvider{},
			"deepseek": &DeepSeekProvider{},
		},
	}
}

// GetProvider returns the provider for a role: role override first, then the
// global active provider, then Gemini.
func (m *Manager) GetProvider(role string) Provider {
	if rc, ok := m.config.Roles[role]; ok && rc.Provider != "" {
		if p, ok := m.providers[rc.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ModelFor returns the configured model name for a role, or "" for the
// provider default.
func (m *Manager) ModelFor(role string) string {
	if rc, ok := m.config.Roles[role]; ok {
		return rc.Model
	}
	return ""
}

// ActiveProvider returns the globally configured provider name.
func (m *Manager) ActiveProvider() string {
	return m.config.ActiveProvider
}

// Available lists the provider names the manager knows about.
func (m *Manager) Available() []string {
	return []string{"gemini", "deepseek"}
}

// SetActiveProvider switches the global provider at runtime.
func (m *Manager) SetActiveProvider(name string) bool {
	if _, ok := m.providers[name]; !ok {
		return false
	}
	m.config.ActiveProvider = name
	return true
}
