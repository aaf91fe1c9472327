package entities

import (
	"fmt"
	"slices"
	"strings"
)

// PipelineStage is one ordered phase of the downstream release pipeline.
type PipelineStage int

const (
	StageValidatePermissions PipelineStage = iota
	StageReset
	StagePrepare
	StageBuild
	StagePackage
	StagePush
)

var stageNames = map[PipelineStage]string{
	StageValidatePermissions: "validate-permissions",
	StageReset:               "reset",
	StagePrepare:             "prepare",
	StageBuild:               "build",
	StagePackage:             "package",
	StagePush:                "push",
}

func (s PipelineStage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// AllStages returns every stage in execution order.
func AllStages() []PipelineStage {
	return []PipelineStage{
		StageValidatePermissions, StageReset, StagePrepare, StageBuild, StagePackage, StagePush,
	}
}

// ParsePipelineStage resolves a stage by its name, e.g. "prepare".
func ParsePipelineStage(name string) (PipelineStage, error) {
	for stage, stageName := range stageNames {
		if strings.EqualFold(stageName, strings.TrimSpace(name)) {
			return stage, nil
		}
	}
	return 0, NewConfigError(fmt.Sprintf("unknown pipeline stage %q", name))
}

// OrderStages deduplicates the requested stages and sorts them into execution order.
func OrderStages(stages []PipelineStage) []PipelineStage {
	ordered := slices.Clone(stages)
	slices.Sort(ordered)
	return slices.Compact(ordered)
}
