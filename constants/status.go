package constants

// PipelineState is the per-invocation state of the extraction pipeline,
// reported through logs as the invocation advances.
type PipelineState string

const (
	StateIdle             PipelineState = "IDLE"
	StateTextExtracted    PipelineState = "TEXT_EXTRACTED"
	StatePromptBuilt      PipelineState = "PROMPT_BUILT"
	StateResponseReceived PipelineState = "RESPONSE_RECEIVED"
	StateDone             PipelineState = "DONE"
)

// OutcomeStatus tags the terminal result of a parse.
// Stable values: they are returned over the API and stored in logs.
type OutcomeStatus string

const (
	OutcomeSuccess       OutcomeStatus = "success"
	OutcomeMalformedJSON OutcomeStatus = "malformed_json"
	OutcomeNoJSONFound   OutcomeStatus = "no_json_found"
)
