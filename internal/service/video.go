package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"orientabot/internal/config"
	"orientabot/internal/domain"
	"orientabot/internal/dto"
	"orientabot/internal/logger"
	"orientabot/internal/util"

	"go.uber.org/zap"
)

// JobState is the lifecycle state of an animation job.
type JobState string

const (
	JobPending JobState = "pending"
	JobPolling JobState = "polling"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// VideoService runs image-to-video generation jobs against the remote
// long-running-operation API with a bounded polling loop.
type VideoService interface {
	// StartAnimation validates the request and starts a job. The job
	// advances Pending -> Polling -> Done|Failed on its own goroutine.
	StartAnimation(req domain.VideoRequest) (*dto.AnimationJobResponse, error)
	// GetJob returns the state of a job.
	GetJob(jobID string) (*dto.AnimationJobResponse, error)
	// JobContent returns the generated video of a Done job.
	JobContent(jobID string) ([]byte, error)
}

type animationJob struct {
	ID        string
	State     JobState
	Err       string
	Video     []byte
	CreatedAt time.Time
}

type videoService struct {
	generator domain.VideoGenerator
	cfg       config.VideoConfig

	mu   sync.Mutex
	jobs map[string]*animationJob
}

// NewVideoService creates a VideoService with no jobs.
func NewVideoService(generator domain.VideoGenerator, cfg config.VideoConfig) VideoService {
	return &videoService{
		generator: generator,
		cfg:       cfg,
		jobs:      make(map[string]*animationJob),
	}
}

func (s *videoService) StartAnimation(req domain.VideoRequest) (*dto.AnimationJobResponse, error) {
	if len(req.ImageBytes) == 0 {
		return nil, domain.NewInvalidInputError("image data is required")
	}
	if !strings.HasPrefix(req.ImageMediaType, "image/") {
		return nil, domain.NewInvalidInputError("image_media_type must be an image type")
	}
	if _, err := domain.ParseAspectRatio(string(req.AspectRatio)); err != nil {
		return nil, err
	}

	job := &animationJob{
		ID:        util.NewULID(),
		State:     JobPending,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	resp := s.jobResponse(job)
	s.mu.Unlock()

	logger.Get().Info("Animation job started",
		zap.String("job_id", job.ID),
		zap.String("aspect_ratio", string(req.AspectRatio)),
	)
	go s.run(job.ID, req)

	return resp, nil
}

// run drives one job through the polling state machine. The remote call is
// detached from any request context: the job outlives the HTTP request
// that started it.
func (s *videoService) run(jobID string, req domain.VideoRequest) {
	ctx := context.Background()

	op, err := s.generator.Start(ctx, req)
	if err != nil {
		s.fail(jobID, err)
		return
	}

	s.setState(jobID, JobPolling)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 0; !op.Done; attempt++ {
		if attempt >= s.cfg.MaxAttempts {
			s.fail(jobID, fmt.Errorf("video generation did not finish after %d polls", s.cfg.MaxAttempts))
			return
		}
		<-ticker.C
		op, err = s.generator.Poll(ctx, op)
		if err != nil {
			s.fail(jobID, err)
			return
		}
	}

	video, err := s.generator.Download(ctx, op)
	if err != nil {
		s.fail(jobID, err)
		return
	}

	s.mu.Lock()
	if job, ok := s.jobs[jobID]; ok {
		job.State = JobDone
		job.Video = video
	}
	s.mu.Unlock()

	logger.Get().Info("Animation job finished",
		zap.String("job_id", jobID),
		zap.Int("video_bytes", len(video)),
	)
}

func (s *videoService) setState(jobID string, state JobState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.State = state
	}
}

func (s *videoService) fail(jobID string, err error) {
	logger.Get().Error("Animation job failed", zap.String("job_id", jobID), zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.State = JobFailed
		job.Err = err.Error()
	}
}

func (s *videoService) GetJob(jobID string) (*dto.AnimationJobResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.NewJobNotFoundError(jobID)
	}
	return s.jobResponse(job), nil
}

func (s *videoService) JobContent(jobID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.NewJobNotFoundError(jobID)
	}
	if job.State == JobFailed {
		return nil, domain.NewVideoServiceError(fmt.Sprintf("Animation job failed: %s", job.Err), nil)
	}
	if job.State != JobDone {
		return nil, domain.NewError(domain.CodeJobNotReady, fmt.Sprintf("Animation job not finished: %s", jobID), nil)
	}
	return job.Video, nil
}

func (s *videoService) jobResponse(job *animationJob) *dto.AnimationJobResponse {
	return &dto.AnimationJobResponse{
		ID:        job.ID,
		State:     string(job.State),
		Error:     job.Err,
		CreatedAt: job.CreatedAt,
	}
}
