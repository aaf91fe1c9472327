package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaser/internal"
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "releaser",
		Short: "Release automation driven by the changelog",
		Long: `Validate, bump and release a project from its changelog, then propagate
the release to every configured downstream repository.

Usage:
  releaser validate     Check that the project is ready to release
  releaser bump         Add the next release to the changelog
  releaser release      Release the newest changelog version
  releaser downstream   Run pipeline stages on the downstream repos
  releaser import URL   Build a changelog from hosted releases
  releaser init         Write a default configuration file`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
			if trace, _ := command.Flags().GetBool("trace"); trace {
				logger.SetLevel(logger.TraceLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("dir", "d", ".",
		"Root directory of the project to release")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().Bool("trace", false,
		"Enable trace output, including raw hosting API responses")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, injectAppContext())

	err := cobraRoot.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, output.FailureLine(err.Error()))
		os.Exit(1)
	}
}
