// Package di provides dependency injection configuration for a traitmint run.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/traitmint/internal/catalog"
	"github.com/listenupapp/traitmint/internal/config"
	"github.com/listenupapp/traitmint/internal/di/providers"
	"github.com/listenupapp/traitmint/internal/generator"
	"github.com/listenupapp/traitmint/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments, without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideRunID)
	do.Provide(injector, providers.ProvideLogger)

	// Inputs
	do.Provide(injector, providers.ProvideCatalog)

	// Outputs
	do.Provide(injector, providers.ProvideOutputStorages)
	do.Provide(injector, providers.ProvideCompositor)
	do.Provide(injector, providers.ProvideEmitter)

	// Driver
	do.Provide(injector, providers.ProvideGenerator)

	return injector
}

// Bootstrap resolves the whole graph and returns the generator ready to run.
// Configuration and catalog errors surface here, before any output is written.
func Bootstrap(injector *do.RootScope) (*generator.Generator, error) {
	// Resolved in order so their domain errors reach the caller unwrapped.
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return nil, err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return nil, err
	}
	if _, err := do.Invoke[*catalog.Catalog](injector); err != nil {
		return nil, err
	}

	return do.Invoke[*generator.Generator](injector)
}
