package dto

// OptionResponse represents one selectable answer
type OptionResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// QuestionResponse represents one quiz question
type QuestionResponse struct {
	ID      int              `json:"id"`
	Text    string           `json:"text"`
	Options []OptionResponse `json:"options"`
}

// SubmitAnswerRequest is the body for answering the current question.
// @Description Request body for submitting a quiz answer
type SubmitAnswerRequest struct {
	OptionIndex int `json:"option_index"`
}

// QuizRunResponse represents the state of a quiz run: either the question
// being waited on, or the final result once the run is finished.
type QuizRunResponse struct {
	RunID          string            `json:"run_id"`
	QuestionNumber int               `json:"question_number,omitempty"`
	TotalQuestions int               `json:"total_questions"`
	Question       *QuestionResponse `json:"question,omitempty"`
	Finished       bool              `json:"finished"`
	Result         string            `json:"result,omitempty"`
}
