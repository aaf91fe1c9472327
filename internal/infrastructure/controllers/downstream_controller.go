package controllers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// DownstreamController handles the "downstream" subcommand.
type DownstreamController struct {
	command  commands.Downstream
	validate commands.Validate
	loader   *ConfigLoader
}

// NewDownstreamController creates a new DownstreamController.
func NewDownstreamController(
	command commands.Downstream,
	validate commands.Validate,
	loader *ConfigLoader,
) *DownstreamController {
	return &DownstreamController{command: command, validate: validate, loader: loader}
}

// GetBind returns the Cobra command metadata for the downstream controller.
func (it *DownstreamController) GetBind() entities.ControllerBind {
	stageNames := make([]string, 0, len(entities.AllStages()))
	for _, stage := range entities.AllStages() {
		stageNames = append(stageNames, stage.String())
	}

	return entities.ControllerBind{
		Use:   "downstream",
		Short: "Run pipeline stages on the downstream repos",
		Long: fmt.Sprintf(`Run pipeline stages for the newest changelog version on the configured
downstream repos. Stages always run in this order: %s.`, strings.Join(stageNames, ", ")),
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the downstream-specific flags to the given Cobra command.
func (it *DownstreamController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("stage", nil, "Stage to run, repeatable (default: every stage)")
	cmd.Flags().String("index", "", "Only run on the downstream repo at this position")
}

// Execute runs the selected stages.
func (it *DownstreamController) Execute(cmd *cobra.Command, _ []string) error {
	stageFlags, _ := cmd.Flags().GetStringSlice("stage")
	index, _ := cmd.Flags().GetString("index")

	stages := entities.AllStages()
	if len(stageFlags) > 0 {
		stages = make([]entities.PipelineStage, 0, len(stageFlags))
		for _, name := range stageFlags {
			stage, err := entities.ParsePipelineStage(name)
			if err != nil {
				return err
			}
			stages = append(stages, stage)
		}
	}

	cfg, err := it.loader.Load(cmd)
	if err != nil {
		return err
	}
	release, err := it.validate.ReadChangelog(cfg)
	if err != nil {
		return err
	}

	if err = it.command.Execute(cmd.Context(), cfg, release, commands.DownstreamOptions{
		Stages:    stages,
		RepoIndex: index,
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.SuccessLine(
		fmt.Sprintf("downstream repos updated to %s", release.Version()),
	))
	return nil
}
