// Package decktypes defines the core types shared between slidedeck's services,
// its HTTP API and its command line.
package decktypes

// Service defines the interface for slidedeck services that provide specific functionality.
// Services are registered at startup and initialized once before use.
type Service interface {
	Name() string
	Initialize() error
}

// ServiceRegistry defines the interface for looking up registered services.
type ServiceRegistry interface {
	RegisterService(service Service) error
	GetService(name string) (Service, error)
}
