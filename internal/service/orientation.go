package service

import (
	"sync"

	"orientabot/internal/domain"
	"orientabot/internal/dto"
	"orientabot/internal/logger"
	"orientabot/internal/util"

	"go.uber.org/zap"
)

// OrientationService manages orientation quiz runs. Each run owns its
// score state exclusively and is discarded when closed.
type OrientationService interface {
	// StartRun opens a new run positioned at the first question.
	StartRun() *dto.QuizRunResponse
	// SubmitAnswer applies the chosen option of the run's current
	// question, advancing the run or finishing it with a result.
	SubmitAnswer(runID string, optionIndex int) (*dto.QuizRunResponse, error)
	// GetRun returns the current state of a run.
	GetRun(runID string) (*dto.QuizRunResponse, error)
	// CloseRun destroys a run. Closing an unknown run is a no-op.
	CloseRun(runID string)
	// Questions returns the full fixed question set.
	Questions() []dto.QuestionResponse
}

type orientationService struct {
	mu   sync.Mutex
	runs map[string]*domain.QuizRun
}

// NewOrientationService creates an OrientationService with no active runs.
func NewOrientationService() OrientationService {
	return &orientationService{
		runs: make(map[string]*domain.QuizRun),
	}
}

func (s *orientationService) StartRun() *dto.QuizRunResponse {
	run := domain.NewQuizRun(util.NewULID())

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	logger.Get().Info("Quiz run started", zap.String("run_id", run.ID))
	return runToResponse(run)
}

func (s *orientationService) SubmitAnswer(runID string, optionIndex int) (*dto.QuizRunResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, domain.NewRunNotFoundError(runID)
	}

	if err := run.SubmitAnswer(optionIndex); err != nil {
		return nil, err
	}

	if run.Finished {
		logger.Get().Info("Quiz run finished",
			zap.String("run_id", run.ID),
			zap.String("result", run.Result),
		)
	}
	return runToResponse(run), nil
}

func (s *orientationService) GetRun(runID string) (*dto.QuizRunResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, domain.NewRunNotFoundError(runID)
	}
	return runToResponse(run), nil
}

func (s *orientationService) CloseRun(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}

func (s *orientationService) Questions() []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(domain.Questions))
	for _, q := range domain.Questions {
		out = append(out, questionToResponse(&q))
	}
	return out
}

func runToResponse(run *domain.QuizRun) *dto.QuizRunResponse {
	resp := &dto.QuizRunResponse{
		RunID:          run.ID,
		TotalQuestions: len(domain.Questions),
		Finished:       run.Finished,
		Result:         run.Result,
	}
	if q := run.CurrentQuestion(); q != nil {
		resp.QuestionNumber = run.Current + 1
		question := questionToResponse(q)
		resp.Question = &question
	}
	return resp
}

func questionToResponse(q *domain.Question) dto.QuestionResponse {
	options := make([]dto.OptionResponse, 0, len(q.Options))
	for i, opt := range q.Options {
		options = append(options, dto.OptionResponse{Index: i, Text: opt.Text})
	}
	return dto.QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Options: options,
	}
}
