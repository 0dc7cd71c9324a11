package pipeline

import "github.com/contentflowhq/contentflow/internal/models"

// Step identifies a pipeline operation. The most recently attempted step is
// stored on the item and routes manual retries back to the right stage.
type Step string

const (
	StepContentGeneration Step = "content_generation"
	StepImageGeneration   Step = "image_generation"
	StepPublishing        Step = "publishing"
)

// Transitions maps each stage to the stages a successful operation may move
// it to. ERROR is reachable from any in-flight step and is not listed.
var Transitions = map[string][]string{
	models.StageNew:         {models.StageTranscribed},
	models.StageTranscribed: {models.StageWritten},
	models.StageWritten:     {models.StageReadyToPost},
	models.StageReadyToPost: {models.StagePosted},
	models.StageError:       {models.StageNew, models.StageWritten, models.StageReadyToPost},
}

// RetryTarget returns the stage a failed item rewinds to for this step.
// Content-generation retries re-run the step; image and publish retries only
// rewind, so a cheap idempotent step can be re-triggered by hand without
// risking a double post.
func (s Step) RetryTarget() string {
	switch s {
	case StepPublishing:
		return models.StageReadyToPost
	case StepImageGeneration:
		return models.StageWritten
	default:
		return models.StageNew
	}
}
