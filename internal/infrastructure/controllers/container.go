package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewConfigLoader,
		NewValidateController,
		NewBumpController,
		NewReleaseController,
		NewDownstreamController,
		NewImportController,
		NewInitController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	validateController *ValidateController,
	bumpController *BumpController,
	releaseController *ReleaseController,
	downstreamController *DownstreamController,
	importController *ImportController,
	initController *InitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		validateController,
		bumpController,
		releaseController,
		downstreamController,
		importController,
		initController,
	}
}
