package watsonx

const (
	DefaultURL     = "https://us-south.ml.cloud.ibm.com/ml/v1/text/generation?version=2023-05-29"
	DefaultModelID = "ibm/granite-3-8b-instruct"

	DecodingGreedy = "greedy"

	DefaultMaxNewTokens        = 50
	DefaultModerationThreshold = 0.5
)

// GenerationRequest is the body of a text generation call.
type GenerationRequest struct {
	Input       string      `json:"input"`
	Parameters  Parameters  `json:"parameters"`
	ModelID     string      `json:"model_id"`
	ProjectID   string      `json:"project_id"`
	Moderations Moderations `json:"moderations"`
}

type Parameters struct {
	DecodingMethod    string   `json:"decoding_method"`
	MaxNewTokens      int      `json:"max_new_tokens"`
	MinNewTokens      int      `json:"min_new_tokens"`
	StopSequences     []string `json:"stop_sequences"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
}

// Moderations configures the server-side hate/abuse/profanity (hap) and
// personal information (pii) filters.
type Moderations struct {
	HAP ModerationPolicy `json:"hap"`
	PII ModerationPolicy `json:"pii"`
}

type ModerationPolicy struct {
	Input  ModerationSetting `json:"input"`
	Output ModerationSetting `json:"output"`
}

type ModerationSetting struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
	Mask      Mask    `json:"mask"`
}

type Mask struct {
	RemoveEntityValue bool `json:"remove_entity_value"`
}

// Result is the first generation result of a response. Text is empty when
// the service returned no results or no generated_text.
type Result struct {
	Text                string
	StopReason          string
	GeneratedTokenCount int
	InputTokenCount     int
}

// DefaultParameters is greedy decoding of at most 50 new tokens, no stop
// sequences and no repetition penalty.
func DefaultParameters() Parameters {
	return Parameters{
		DecodingMethod:    DecodingGreedy,
		MaxNewTokens:      DefaultMaxNewTokens,
		MinNewTokens:      0,
		StopSequences:     []string{},
		RepetitionPenalty: 1,
	}
}

// DefaultModerations enables both filters on input and output, masking
// detected entity values.
func DefaultModerations(threshold float64) Moderations {
	setting := ModerationSetting{
		Enabled:   true,
		Threshold: threshold,
		Mask:      Mask{RemoveEntityValue: true},
	}
	policy := ModerationPolicy{Input: setting, Output: setting}
	return Moderations{HAP: policy, PII: policy}
}

func NewGenerationRequest(input, modelID, projectID string, threshold float64) GenerationRequest {
	if modelID == "" {
		modelID = DefaultModelID
	}
	return GenerationRequest{
		Input:       input,
		Parameters:  DefaultParameters(),
		ModelID:     modelID,
		ProjectID:   projectID,
		Moderations: DefaultModerations(threshold),
	}
}
