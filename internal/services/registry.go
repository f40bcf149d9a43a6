package services

import (
	"fmt"
	"sync"

	"slidedeck/pkg/decktypes"
)

// Registry manages service registration and lifecycle for slidedeck services.
// Services are initialized in registration order.
type Registry struct {
	mu       sync.RWMutex
	services map[string]decktypes.Service
	order    []string
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]decktypes.Service),
	}
}

// RegisterService adds a service to the registry, returning an error if already registered.
func (r *Registry) RegisterService(service decktypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}

	r.services[name] = service
	r.order = append(r.order, name)
	return nil
}

// GetService retrieves a service by name, returning an error if not found.
func (r *Registry) GetService(name string) (decktypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}

	return service, nil
}

// InitializeAll initializes all registered services in registration order.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if err := r.services[name].Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}

	return nil
}

// GetAllServices returns a copy of all registered services.
func (r *Registry) GetAllServices() map[string]decktypes.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]decktypes.Service, len(r.services))
	for name, service := range r.services {
		result[name] = service
	}

	return result
}

// getTyped looks up name and asserts it to T.
func getTyped[T decktypes.Service](r *Registry, name string) (T, error) {
	var zero T
	service, err := r.GetService(name)
	if err != nil {
		return zero, err
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has unexpected type %T", name, service)
	}
	return typed, nil
}

// ConfigurationService returns the registered ConfigurationService.
func (r *Registry) ConfigurationService() (*ConfigurationService, error) {
	return getTyped[*ConfigurationService](r, "configuration")
}

// LayoutCatalogService returns the registered LayoutCatalogService.
func (r *Registry) LayoutCatalogService() (*LayoutCatalogService, error) {
	return getTyped[*LayoutCatalogService](r, "layout_catalog")
}

// VerificationService returns the registered VerificationService.
func (r *Registry) VerificationService() (*VerificationService, error) {
	return getTyped[*VerificationService](r, "verification")
}

// MarkdownService returns the registered MarkdownService.
func (r *Registry) MarkdownService() (*MarkdownService, error) {
	return getTyped[*MarkdownService](r, "markdown")
}

// GlobalRegistry is the global service registry instance used throughout slidedeck.
var GlobalRegistry = NewRegistry()

// globalRegistryMu protects access to the GlobalRegistry variable itself
var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global service registry instance in a thread-safe manner
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry sets the global service registry instance in a thread-safe manner
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}
