package services

import (
	"strings"

	deckcontext "slidedeck/internal/context"
	"slidedeck/internal/logger"
	"slidedeck/pkg/decktypes"
)

// ProviderKey is the configuration key selecting the active LLM provider.
const ProviderKey = "LLM"

// ConfigurationService resolves the active LLM provider and whether its
// required credential is configured. Every call reads the user config file
// and the environment afresh.
type ConfigurationService struct {
	config  deckcontext.ConfigurationSubcontext
	catalog *ProviderCatalogService
}

// NewConfigurationService creates a ConfigurationService reading from config.
// A nil config uses the process-wide configuration subcontext.
func NewConfigurationService(config deckcontext.ConfigurationSubcontext) *ConfigurationService {
	return &ConfigurationService{
		config:  config,
		catalog: NewProviderCatalogService(),
	}
}

// Name returns the service name "configuration" for registration.
func (c *ConfigurationService) Name() string {
	return "configuration"
}

// Initialize prepares the provider table used for resolution.
func (c *ConfigurationService) Initialize() error {
	return c.catalog.Initialize()
}

func (c *ConfigurationService) subcontext() deckcontext.ConfigurationSubcontext {
	if c.config != nil {
		return c.config
	}
	return deckcontext.GetGlobalConfiguration()
}

// layeredValue returns the file value when it is non-empty, otherwise the
// environment value, otherwise "". No trimming is applied here, so a
// whitespace-only file value still shadows the environment.
func layeredValue(fileCfg map[string]string, env deckcontext.EnvProvider, key string) (string, decktypes.ValueSource) {
	if value := fileCfg[key]; value != "" {
		return value, decktypes.SourceConfigFile
	}
	if value := deckcontext.Getenv(env, key); value != "" {
		return value, decktypes.SourceEnv
	}
	return "", decktypes.SourceNone
}

// Resolve determines the active provider and whether its credential is set.
// Unreadable or malformed configuration files are treated as absent and never
// reported as errors.
func (c *ConfigurationService) Resolve() decktypes.Resolution {
	resolution, _ := c.resolve()
	return resolution
}

// ResolveWithValue is Resolve plus the trimmed credential value, for callers
// that need to use the credential (verification).
func (c *ConfigurationService) ResolveWithValue() (decktypes.Resolution, string) {
	return c.resolve()
}

func (c *ConfigurationService) resolve() (decktypes.Resolution, string) {
	sub := c.subcontext()
	env := sub.Environment()
	fileCfg := sub.LoadUserConfig(env)

	requested, _ := layeredValue(fileCfg, env, ProviderKey)
	provider, _ := ParseProvider(requested)
	requirement := c.catalog.RequirementOrDefault(requested)

	value, source := layeredValue(fileCfg, env, requirement.Key)
	value = strings.TrimSpace(value)

	resolution := decktypes.Resolution{
		RequestedProvider: requested,
		Provider:          provider,
		Requirement:       requirement,
		Source:            source,
		HasKey:            value != "",
	}

	logger.Debug("Resolved provider credential",
		"provider", requirement.Provider,
		"requested", requested,
		"key", requirement.Key,
		"source", source,
		"hasKey", resolution.HasKey)

	return resolution, value
}

// HasRequiredKey reports whether the active provider's credential is configured.
func (c *ConfigurationService) HasRequiredKey() bool {
	return c.Resolve().HasKey
}

// GetConfigValue retrieves a layered configuration value (file, then environment).
// Returns empty string if the value is not configured.
func (c *ConfigurationService) GetConfigValue(key string) string {
	sub := c.subcontext()
	env := sub.Environment()
	value, _ := layeredValue(sub.LoadUserConfig(env), env, key)
	return value
}

// GetSupportedProviders returns the supported provider names.
func (c *ConfigurationService) GetSupportedProviders() []string {
	return c.catalog.GetSupportedProviders()
}
