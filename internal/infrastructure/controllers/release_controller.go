package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// ReleaseController handles the "release" subcommand.
type ReleaseController struct {
	command commands.Release
	loader  *ConfigLoader
}

// NewReleaseController creates a new ReleaseController.
func NewReleaseController(command commands.Release, loader *ConfigLoader) *ReleaseController {
	return &ReleaseController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the release controller.
func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release",
		Short: "Release the newest changelog version",
		Long: `Validate the project, confirm the pre-release checklist, then build, tag,
push, publish and wait for the package manager. The hosted release is created
with the changelog as its notes, and every downstream repo is updated.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the release-specific flags to the given Cobra command.
func (it *ReleaseController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-downstream", false, "Stop once the root project is released")
}

// Execute runs the release.
func (it *ReleaseController) Execute(cmd *cobra.Command, _ []string) error {
	skipDownstream, _ := cmd.Flags().GetBool("skip-downstream")

	cfg, err := it.loader.Load(cmd)
	if err != nil {
		return err
	}

	release, err := it.command.Execute(cmd.Context(), cfg, commands.ReleaseOptions{SkipDownstream: skipDownstream})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine(
		fmt.Sprintf("released %s %s", cfg.ProductName(), release.Version()),
	))
	return nil
}
