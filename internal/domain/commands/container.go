package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register shared components
	if err := container.Provide(NewRepoStateChecker); err != nil {
		return err
	}
	if err := container.Provide(NewVersionBumper); err != nil {
		return err
	}

	// Register command constructors
	constructors := []any{
		NewValidateCommand,
		NewBumpCommand,
		NewDownstreamCommand,
		NewReleaseCommand,
		NewImportCommand,
		NewInitCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ValidateCommand) Validate {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BumpCommand) Bump {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DownstreamCommand) Downstream {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ReleaseCommand) Release {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ImportCommand) Import {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *InitCommand) Init {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
