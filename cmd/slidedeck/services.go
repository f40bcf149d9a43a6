package main

import (
	deckcontext "slidedeck/internal/context"
	"slidedeck/internal/logger"
	"slidedeck/internal/services"
)

// initializeServices builds a fresh registry with every slidedeck service,
// resolving configuration from env and the optional .env file, and installs
// it as the global registry.
func initializeServices(env deckcontext.EnvProvider, envFile string) (*services.Registry, error) {
	registry := services.NewRegistry()

	configuration := deckcontext.NewConfigurationSubcontext(env, envFile)
	deckcontext.SetGlobalConfiguration(configuration)
	config := services.NewConfigurationService(configuration)

	// Register ConfigurationService first - verification depends on it
	if err := registry.RegisterService(config); err != nil {
		return nil, err
	}

	if err := registry.RegisterService(services.NewLayoutCatalogService()); err != nil {
		return nil, err
	}

	if err := registry.RegisterService(services.NewVerificationService(config, nil)); err != nil {
		return nil, err
	}

	if err := registry.RegisterService(services.NewMarkdownService(deckcontext.Getenv(env, "GLAMOUR_STYLE"))); err != nil {
		return nil, err
	}

	if err := registry.InitializeAll(); err != nil {
		return nil, err
	}

	services.SetGlobalRegistry(registry)
	logger.Debug("Services initialized", "count", len(registry.GetAllServices()))
	return registry, nil
}
