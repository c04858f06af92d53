package di

import (
	"alchemy-backend/application/ports"
	"alchemy-backend/application/services"
	"alchemy-backend/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds the wired application components.
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ElementRepo    ports.ElementRepository
	FusionService  *services.FusionService
	LibraryService *services.LibraryService
	GraphService   *services.GraphService
}
