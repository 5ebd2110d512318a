package service

import (
	"errors"
	"testing"
	"time"

	"orientabot/internal/config"
	"orientabot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoConfigForTest() config.VideoConfig {
	return config.VideoConfig{
		PollInterval: time.Millisecond,
		MaxAttempts:  10,
	}
}

func validVideoRequest() domain.VideoRequest {
	return domain.VideoRequest{
		Prompt:         "Anima questa immagine",
		ImageBytes:     []byte{0x89, 0x50, 0x4e, 0x47},
		ImageMediaType: "image/png",
		AspectRatio:    domain.AspectLandscape,
	}
}

func TestStartAnimationValidation(t *testing.T) {
	svc := NewVideoService(&fakeGenerator{}, videoConfigForTest())

	tests := []struct {
		name   string
		mutate func(*domain.VideoRequest)
	}{
		{"missing image", func(r *domain.VideoRequest) { r.ImageBytes = nil }},
		{"non-image media type", func(r *domain.VideoRequest) { r.ImageMediaType = "application/pdf" }},
		{"bad aspect ratio", func(r *domain.VideoRequest) { r.AspectRatio = "4:3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validVideoRequest()
			tt.mutate(&req)

			_, err := svc.StartAnimation(req)
			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
		})
	}
}

func TestAnimationJobCompletes(t *testing.T) {
	gen := &fakeGenerator{
		startOp: &domain.VideoOperation{Done: false},
		pollOps: []*domain.VideoOperation{
			{Done: false},
			{Done: true, URI: "files/video-1"},
		},
		video: []byte("mp4-bytes"),
	}
	svc := NewVideoService(gen, videoConfigForTest())

	job, err := svc.StartAnimation(validVideoRequest())
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, string(JobPending), job.State)

	assert.Eventually(t, func() bool {
		state, err := svc.GetJob(job.ID)
		return err == nil && state.State == string(JobDone)
	}, time.Second, 5*time.Millisecond)

	content, err := svc.JobContent(job.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4-bytes"), content)
	assert.Equal(t, 2, gen.pollCount())
}

func TestAnimationJobDoneWithoutPolling(t *testing.T) {
	gen := &fakeGenerator{
		startOp: &domain.VideoOperation{Done: true},
		video:   []byte("mp4-bytes"),
	}
	svc := NewVideoService(gen, videoConfigForTest())

	job, err := svc.StartAnimation(validVideoRequest())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		state, err := svc.GetJob(job.ID)
		return err == nil && state.State == string(JobDone)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, gen.pollCount())
}

func TestAnimationJobFailsAfterMaxAttempts(t *testing.T) {
	gen := &fakeGenerator{
		startOp: &domain.VideoOperation{Done: false},
		pollOps: []*domain.VideoOperation{{Done: false}},
	}
	svc := NewVideoService(gen, videoConfigForTest())

	job, err := svc.StartAnimation(validVideoRequest())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		state, err := svc.GetJob(job.ID)
		return err == nil && state.State == string(JobFailed)
	}, time.Second, 5*time.Millisecond)

	state, err := svc.GetJob(job.ID)
	require.NoError(t, err)
	assert.Contains(t, state.Error, "did not finish")
}

func TestAnimationJobFailsOnStartError(t *testing.T) {
	gen := &fakeGenerator{startErr: errors.New("model rejected request")}
	svc := NewVideoService(gen, videoConfigForTest())

	job, err := svc.StartAnimation(validVideoRequest())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		state, err := svc.GetJob(job.ID)
		return err == nil && state.State == string(JobFailed)
	}, time.Second, 5*time.Millisecond)

	state, err := svc.GetJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "model rejected request", state.Error)

	// Requesting content of a failed job surfaces the generation failure.
	_, err = svc.JobContent(job.ID)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeVideoService, domainErr.Code)
	assert.Contains(t, domainErr.Message, "model rejected request")
}

func TestJobContentBeforeCompletion(t *testing.T) {
	// A poll interval far beyond the test horizon keeps the job polling.
	gen := &fakeGenerator{startOp: &domain.VideoOperation{Done: false}}
	svc := NewVideoService(gen, config.VideoConfig{PollInterval: time.Hour, MaxAttempts: 10})

	job, err := svc.StartAnimation(validVideoRequest())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		state, err := svc.GetJob(job.ID)
		return err == nil && state.State == string(JobPolling)
	}, time.Second, 5*time.Millisecond)

	_, err = svc.JobContent(job.ID)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeJobNotReady, domainErr.Code)
}

func TestUnknownJob(t *testing.T) {
	svc := NewVideoService(&fakeGenerator{}, videoConfigForTest())

	var domainErr *domain.DomainError

	_, err := svc.GetJob("missing")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeJobNotFound, domainErr.Code)

	_, err = svc.JobContent("missing")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeJobNotFound, domainErr.Code)
}
