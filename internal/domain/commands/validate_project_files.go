package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

const gitignoreFile = ".gitignore"

// textFileSuffixes select the tracked files that must end with a newline.
//
//nolint:gochecknoglobals // fixed list
var textFileSuffixes = []string{
	".md", ".txt", ".ini", ".in", ".xml", ".gitignore", ".npmignore", ".html", ".css", ".h",
	"Gemfile", "Gemfile.lock", ".rspec", ".gemspec", ".podspec", ".rb", ".java", ".php", ".py",
	".js", ".yaml", ".json", ".sh", ".groovy", ".gradle", ".settings", ".properties",
	"LICENSE", "Rakefile", "Dockerfile", ".go", ".mod", ".yml", ".toml",
}

// validateReadmeReference requires the README of the docs directory to link the changelog.
func (it *ValidateCommand) validateReadmeReference(cfg *entities.ReleaseConfig) error {
	docsDir := filepath.Join(cfg.RootDir, cfg.Settings.BaseDocsDir)
	readme := filepath.Join(docsDir, readmeFile)
	link := "(" + cfg.Settings.ChangelogPath + ")"

	found, err := fileHasLine(readme, func(line string) bool { return strings.Contains(line, link) })
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", readme, err)
	}
	if !found {
		return entities.NewConfigError(fmt.Sprintf(
			"please link to the %s file somewhere in %s", cfg.Settings.ChangelogPath, readme,
		))
	}

	logger.Infof("[readme] %s referenced in %s", cfg.Settings.ChangelogPath, readme)
	return nil
}

// ensureIgnored appends line to the .gitignore of dir when no line matches it exactly,
// committing the change when the working copy was clean beforehand.
func (it *ValidateCommand) ensureIgnored(ctx context.Context, dir, line string) error {
	path := filepath.Join(dir, gitignoreFile)
	found, err := fileHasLine(path, func(candidate string) bool { return candidate == line })
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if found {
		logger.Infof("[git] %s contains %s", gitignoreFile, line)
		return nil
	}

	wasClean, err := it.git.IsClean(dir)
	if err != nil {
		return err
	}

	if err = appendLine(path, line); err != nil {
		return err
	}
	logger.Infof("[git] Added missing line '%s' to %s", line, gitignoreFile)

	if !wasClean {
		return nil
	}
	if err = it.git.Add(ctx, dir, gitignoreFile); err != nil {
		return err
	}
	return it.git.Commit(ctx, dir, "releaser: add missing line to "+gitignoreFile)
}

// ensureEOFNewlines appends a newline to every tracked text file of dir that lacks one.
func (it *ValidateCommand) ensureEOFNewlines(dir string) error {
	tracked, err := it.git.TrackedFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to list tracked files: %w", err)
	}

	for _, name := range tracked {
		if !isTextFile(name) {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				continue
			}
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		if len(content) == 0 || content[len(content)-1] == '\n' {
			continue
		}
		if err = appendText(path, "\n"); err != nil {
			return err
		}
		logger.Warnf("[git] Added a missing newline at the end of %s", name)
	}
	return nil
}

func isTextFile(name string) bool {
	for _, suffix := range textFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// fileHasLine reports whether any line of path satisfies match. Lines of any length are read.
func fileHasLine(path string, match func(line string) bool) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" && match(strings.TrimRight(line, "\r\n")) {
			return true, nil
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return false, nil
			}
			return false, readErr
		}
	}
}

// appendLine writes line at the end of path on a line of its own, creating the file when missing.
func appendLine(path, line string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		line = "\n" + line
	}
	return appendText(path, line+"\n")
}

func appendText(path, text string) error {
	//nolint:gosec // project files keep their usual permissions
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err = file.WriteString(text); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
