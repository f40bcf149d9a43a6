package context

import (
	"sync"
)

// globalConfiguration holds the process-wide configuration subcontext
var globalConfiguration ConfigurationSubcontext

// globalConfigurationMu protects access to globalConfiguration
var globalConfigurationMu sync.RWMutex

// GetGlobalConfiguration returns the process-wide configuration subcontext.
// If none has been set, one reading the process environment is created.
func GetGlobalConfiguration() ConfigurationSubcontext {
	globalConfigurationMu.RLock()
	cfg := globalConfiguration
	globalConfigurationMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigurationMu.Lock()
	defer globalConfigurationMu.Unlock()
	if globalConfiguration == nil {
		globalConfiguration = NewConfigurationSubcontext(OSEnv{}, "")
	}
	return globalConfiguration
}

// SetGlobalConfiguration replaces the process-wide configuration subcontext.
func SetGlobalConfiguration(cfg ConfigurationSubcontext) {
	globalConfigurationMu.Lock()
	defer globalConfigurationMu.Unlock()
	globalConfiguration = cfg
}

// ResetGlobalConfiguration clears the process-wide configuration subcontext.
// This is primarily for testing purposes.
func ResetGlobalConfiguration() {
	SetGlobalConfiguration(nil)
}
