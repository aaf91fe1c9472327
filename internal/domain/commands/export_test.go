package commands

import "time"

// FindSimilarFiles exports findSimilarFiles for testing.
var FindSimilarFiles = findSimilarFiles //nolint:gochecknoglobals // test export

// SleepContext exports sleepContext for testing.
var SleepContext = sleepContext //nolint:gochecknoglobals // test export

// SetSettleDelay overrides the pause after pushing a downstream ref.
func (it *DownstreamCommand) SetSettleDelay(delay time.Duration) {
	it.settleDelay = delay
}

// SetGetenv overrides the environment lookup used to find $EDITOR.
func (it *BumpCommand) SetGetenv(getenv func(string) string) {
	it.getenv = getenv
}
