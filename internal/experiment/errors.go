package experiment

import "fmt"

// Stage names the step of a scenario run that failed.
type Stage string

const (
	StageSources      Stage = "sources"
	StageGrid         Stage = "grid"
	StageEvolve       Stage = "evolve"
	StageOutput       Stage = "output"
	StageRender3D     Stage = "render-3d"
	StageRenderWall   Stage = "render-wall"
	StageRenderResult Stage = "render-result"
	StageAnalyze      Stage = "analyze"
	StageRecord       Stage = "record"
)

// ScenarioError reports which scenario failed and where.
type ScenarioError struct {
	Scenario string
	Stage    Stage
	Err      error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %s: %v", e.Scenario, e.Stage, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}
