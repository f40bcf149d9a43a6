package decktypes

// Provider identifies an LLM backend selected through the LLM configuration key.
type Provider string

// Supported providers. ProviderDefault is the state used when LLM is empty or
// names none of the known providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
	ProviderCustom    Provider = "custom"
	ProviderDefault   Provider = ""
)

// CredentialKind describes what the required configuration value holds.
type CredentialKind string

// Credential kinds.
const (
	CredentialAPIKey CredentialKind = "api_key"
	CredentialURL    CredentialKind = "url"
)

// CredentialRequirement maps a provider to the configuration key holding the
// credential it needs.
type CredentialRequirement struct {
	Provider    Provider       `json:"provider" yaml:"provider"`
	Key         string         `json:"key" yaml:"key"`
	Kind        CredentialKind `json:"kind" yaml:"kind"`
	DisplayName string         `json:"displayName" yaml:"display_name"`
}

// ValueSource names the configuration layer a value was taken from.
type ValueSource string

// Value sources in priority order.
const (
	SourceConfigFile ValueSource = "config"
	SourceEnv        ValueSource = "env"
	SourceNone       ValueSource = ""
)

// Resolution is the outcome of one credential check.
type Resolution struct {
	// RequestedProvider is the raw LLM value as found in configuration.
	RequestedProvider string `json:"requestedProvider"`

	// Provider is the matched provider, or ProviderDefault when unrecognized.
	Provider Provider `json:"provider"`

	// Requirement is the credential requirement that was checked.
	Requirement CredentialRequirement `json:"requirement"`

	// Source is where the credential value came from.
	Source ValueSource `json:"source"`

	// HasKey reports whether the trimmed credential value is non-empty.
	HasKey bool `json:"hasKey"`
}
