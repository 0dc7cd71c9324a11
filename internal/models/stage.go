package models

// Pipeline stages. Exactly one is active per video at any time.
const (
	StageNew         = "NEW"
	StageTranscribed = "TRANSCRIBED"
	StageWritten     = "WRITTEN"
	StageReadyToPost = "READY_TO_POST"
	StagePosted      = "POSTED"
	StageError       = "ERROR"
)

// AllStages lists every observable stage value, in pipeline order.
var AllStages = []string{
	StageNew,
	StageTranscribed,
	StageWritten,
	StageReadyToPost,
	StagePosted,
	StageError,
}

// ValidStage reports whether s is one of the six pipeline stages.
func ValidStage(s string) bool {
	for _, v := range AllStages {
		if s == v {
			return true
		}
	}
	return false
}

// Activity results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)
