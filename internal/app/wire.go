//go:build wireinject
// +build wireinject

package app

import (
	"github.com/amaumene/traktmanager/internal/config"
	"github.com/google/wire"
)

// Initialize assembles the application from its configuration
func Initialize(cfg *config.Config, out Output) (*App, func(), error) {
	wire.Build(providerSet)
	return nil, nil, nil
}
