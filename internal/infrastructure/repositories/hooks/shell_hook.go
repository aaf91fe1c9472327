package hooks

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// ShellHook is a configured shell command template. The same hook serves as builder,
// publisher, post-copy step, version updater or validation.
type ShellHook struct {
	name    string
	command string
	process repositories.ProcessRepository
}

var (
	_ entities.Builder        = (*ShellHook)(nil)
	_ entities.Publisher      = (*ShellHook)(nil)
	_ entities.PostCopier     = (*ShellHook)(nil)
	_ entities.VersionUpdater = (*ShellHook)(nil)
	_ entities.Validation     = (*ShellHook)(nil)
)

// NewShellHook creates a hook for command; name is used in messages.
func NewShellHook(name, command string, process repositories.ProcessRepository) *ShellHook {
	return &ShellHook{name: name, command: command, process: process}
}

// Name is the configuration key the hook came from.
func (it *ShellHook) Name() string { return it.name }

func (it *ShellHook) Build(ctx context.Context, dir, version string) error {
	return it.run(ctx, dir, entities.TemplateData{Version: version})
}

func (it *ShellHook) Publish(ctx context.Context, dir, version string) error {
	return it.run(ctx, dir, entities.TemplateData{Version: version})
}

func (it *ShellHook) PostCopy(ctx context.Context, dir, version string) error {
	return it.run(ctx, dir, entities.TemplateData{Version: version})
}

func (it *ShellHook) UpdateVersion(ctx context.Context, dir, version string, kind entities.BumpKind) error {
	return it.run(ctx, dir, entities.TemplateData{Version: version, SemverType: kind})
}

func (it *ShellHook) Validate(ctx context.Context, dir string, release *entities.CurrentRelease) error {
	if err := it.run(ctx, dir, entities.TemplateData{Version: release.Version()}); err != nil {
		return err
	}
	logger.Infof("[hook] Validated %s", it.name)
	return nil
}

func (it *ShellHook) run(ctx context.Context, dir string, data entities.TemplateData) error {
	command, err := entities.RenderTemplate(it.name, it.command, data)
	if err != nil {
		return err
	}
	logger.Debugf("[hook] Running %s", it.name)
	_, err = it.process.RunShell(ctx, dir, command, true)
	return err
}

// PollingWaiter runs a command until it prints something, pausing between attempts.
type PollingWaiter struct {
	command  string
	interval time.Duration
	process  repositories.ProcessRepository
}

var _ entities.Waiter = (*PollingWaiter)(nil)

// NewPollingWaiter creates a waiter polling command every interval.
func NewPollingWaiter(command string, interval time.Duration, process repositories.ProcessRepository) *PollingWaiter {
	return &PollingWaiter{command: command, interval: interval, process: process}
}

func (it *PollingWaiter) Wait(ctx context.Context, dir, version string) error {
	command, err := entities.RenderTemplate("wait_for_package_manager_command", it.command, entities.TemplateData{
		Version: version,
	})
	if err != nil {
		return err
	}

	for {
		output, runErr := it.process.RunShell(ctx, dir, command, false)
		if runErr != nil {
			return runErr
		}
		if strings.TrimSpace(output) != "" {
			logger.Infof("[hook] The package manager is serving %s", version)
			return nil
		}

		logger.Infof("[hook] %s not visible yet, sleeping for %s...", version, it.interval)
		timer := time.NewTimer(it.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
