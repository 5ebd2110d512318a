package handler

import (
	"encoding/base64"

	"orientabot/internal/domain"
	"orientabot/internal/dto"
	"orientabot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// VideoHandler handles animation-generation HTTP requests
type VideoHandler struct {
	service service.VideoService
}

// NewVideoHandler creates a new VideoHandler instance
func NewVideoHandler(service service.VideoService) *VideoHandler {
	return &VideoHandler{
		service: service,
	}
}

// StartAnimation godoc
// @Summary Generate a short animation from an image
// @Description Starts an image-to-video job; poll the returned job until it reaches the done or failed state
// @Tags video
// @Accept json
// @Produce json
// @Param request body dto.AnimationRequest true "Animation request"
// @Success 202 {object} dto.AnimationJobResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /video/animations [post]
func (h *VideoHandler) StartAnimation(c *fiber.Ctx) error {
	var req dto.AnimationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return domain.NewInvalidInputError("image_data must be base64-encoded")
	}

	aspect, err := domain.ParseAspectRatio(req.AspectRatio)
	if err != nil {
		return err
	}

	job, err := h.service.StartAnimation(domain.VideoRequest{
		Prompt:         req.Prompt,
		ImageBytes:     image,
		ImageMediaType: req.ImageMediaType,
		AspectRatio:    aspect,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(job)
}

// GetJob godoc
// @Summary Get an animation job
// @Tags video
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.AnimationJobResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /video/animations/{id} [get]
func (h *VideoHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// GetJobContent godoc
// @Summary Download the generated animation
// @Tags video
// @Produce video/mp4
// @Param id path string true "Job ID"
// @Success 200 {string} binary "MP4 video"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /video/animations/{id}/content [get]
func (h *VideoHandler) GetJobContent(c *fiber.Ctx) error {
	video, err := h.service.JobContent(c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "video/mp4")
	return c.Send(video)
}
