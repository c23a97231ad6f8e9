package models

// DefaultClarifierQuestions are asked when no other question set is configured.
var DefaultClarifierQuestions = []string{
	"When did the issue first appear?",
	"Does it happen at specific speeds or temperatures?",
	"Are there any warning lights or smells accompanying it?",
}

// ClarifyRequest is the body of POST /api/clarify.
type ClarifyRequest struct {
	Notes   string   `json:"notes"`
	Answers []string `json:"answers"`
}

// ClarifyResponse carries the next questions to ask and a summary of the notes.
type ClarifyResponse struct {
	PromptSummary string   `json:"promptSummary"`
	Questions     []string `json:"questions"`
	Completed     bool     `json:"completed"`
}
