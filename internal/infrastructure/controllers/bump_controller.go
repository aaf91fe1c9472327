package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// BumpController handles the "bump" subcommand.
type BumpController struct {
	command commands.Bump
	loader  *ConfigLoader
}

// NewBumpController creates a new BumpController.
func NewBumpController(command commands.Bump, loader *ConfigLoader) *BumpController {
	return &BumpController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the bump controller.
func (it *BumpController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "bump",
		Short: "Add the next release to the changelog",
		Long: `Ask whether the next release is a major, minor or patch release, open $EDITOR
with the commits since the last tag, and write the result as the new top entry
of the changelog. The update_version_command runs afterwards, if configured.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags has nothing to add for bump.
func (it *BumpController) AddFlags(_ *cobra.Command) {}

// Execute runs the bump.
func (it *BumpController) Execute(cmd *cobra.Command, _ []string) error {
	cfg, err := it.loader.Load(cmd)
	if err != nil {
		return err
	}

	release, err := it.command.Execute(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine(
		fmt.Sprintf("changelog updated to %s, commit it and run 'releaser release'", release.Version()),
	))
	return nil
}
