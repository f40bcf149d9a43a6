package services

import (
	"fmt"

	"slidedeck/pkg/decktypes"
)

// credentialRequirements is the static Provider -> credential key table.
// Adding a provider is a matter of adding an entry here.
var credentialRequirements = map[decktypes.Provider]decktypes.CredentialRequirement{
	decktypes.ProviderOpenAI: {
		Provider:    decktypes.ProviderOpenAI,
		Key:         "OPENAI_API_KEY",
		Kind:        decktypes.CredentialAPIKey,
		DisplayName: "OpenAI",
	},
	decktypes.ProviderGoogle: {
		Provider:    decktypes.ProviderGoogle,
		Key:         "GOOGLE_API_KEY",
		Kind:        decktypes.CredentialAPIKey,
		DisplayName: "Google Gemini",
	},
	decktypes.ProviderAnthropic: {
		Provider:    decktypes.ProviderAnthropic,
		Key:         "ANTHROPIC_API_KEY",
		Kind:        decktypes.CredentialAPIKey,
		DisplayName: "Anthropic",
	},
	decktypes.ProviderOllama: {
		Provider:    decktypes.ProviderOllama,
		Key:         "OLLAMA_URL",
		Kind:        decktypes.CredentialURL,
		DisplayName: "Ollama",
	},
	decktypes.ProviderCustom: {
		Provider:    decktypes.ProviderCustom,
		Key:         "CUSTOM_LLM_URL",
		Kind:        decktypes.CredentialURL,
		DisplayName: "Custom OpenAI-compatible",
	},
}

// providerOrder fixes the listing order of the table.
var providerOrder = []decktypes.Provider{
	decktypes.ProviderOpenAI,
	decktypes.ProviderGoogle,
	decktypes.ProviderAnthropic,
	decktypes.ProviderOllama,
	decktypes.ProviderCustom,
}

// defaultProvider is the provider whose requirement applies when LLM is
// empty or unrecognized. This keeps older deployments, which only ever set
// OPENAI_API_KEY, working.
const defaultProvider = decktypes.ProviderOpenAI

// ProviderCatalogService answers which configuration key each provider needs.
type ProviderCatalogService struct {
	initialized bool
}

// NewProviderCatalogService creates a new ProviderCatalogService instance.
func NewProviderCatalogService() *ProviderCatalogService {
	return &ProviderCatalogService{
		initialized: false,
	}
}

// Name returns the service name "provider_catalog" for registration.
func (p *ProviderCatalogService) Name() string {
	return "provider_catalog"
}

// Initialize checks that the requirement table is consistent.
func (p *ProviderCatalogService) Initialize() error {
	if len(providerOrder) != len(credentialRequirements) {
		return fmt.Errorf("provider table has %d entries but %d are ordered", len(credentialRequirements), len(providerOrder))
	}
	for _, provider := range providerOrder {
		req, ok := credentialRequirements[provider]
		if !ok {
			return fmt.Errorf("provider %q has no credential requirement", provider)
		}
		if req.Key == "" {
			return fmt.Errorf("provider %q has an empty credential key", provider)
		}
	}
	p.initialized = true
	return nil
}

// ParseProvider matches name case-insensitively against the supported
// providers. The name is not trimmed, and only ASCII letters are folded:
// "anthropİc" (dotted capital I) is not "anthropic".
func ParseProvider(name string) (decktypes.Provider, bool) {
	provider := decktypes.Provider(asciiLower(name))
	if _, ok := credentialRequirements[provider]; !ok {
		return decktypes.ProviderDefault, false
	}
	return provider, true
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Requirement returns the credential requirement for a provider name.
func (p *ProviderCatalogService) Requirement(name string) (decktypes.CredentialRequirement, bool) {
	provider, ok := ParseProvider(name)
	if !ok {
		return decktypes.CredentialRequirement{}, false
	}
	return credentialRequirements[provider], true
}

// RequirementOrDefault returns the requirement for name, falling back to the
// openai requirement when name is not a supported provider.
func (p *ProviderCatalogService) RequirementOrDefault(name string) decktypes.CredentialRequirement {
	if req, ok := p.Requirement(name); ok {
		return req
	}
	return credentialRequirements[defaultProvider]
}

// List returns every credential requirement in a stable order.
func (p *ProviderCatalogService) List() []decktypes.CredentialRequirement {
	result := make([]decktypes.CredentialRequirement, 0, len(providerOrder))
	for _, provider := range providerOrder {
		result = append(result, credentialRequirements[provider])
	}
	return result
}

// GetSupportedProviders returns the supported provider names.
func (p *ProviderCatalogService) GetSupportedProviders() []string {
	names := make([]string, 0, len(providerOrder))
	for _, provider := range providerOrder {
		names = append(names, string(provider))
	}
	return names
}
