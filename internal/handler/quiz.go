package handler

import (
	"orientabot/internal/domain"
	"orientabot/internal/dto"
	"orientabot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles orientation quiz HTTP requests
type QuizHandler struct {
	service service.OrientationService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.OrientationService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetQuestions godoc
// @Summary Get the orientation question set
// @Description Returns all five questions with their options, in order
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Router /quiz/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(h.service.Questions())
}

// StartRun godoc
// @Summary Start an orientation quiz run
// @Description Opens a new run positioned at the first question
// @Tags quiz
// @Produce json
// @Success 201 {object} dto.QuizRunResponse
// @Router /quiz/runs [post]
func (h *QuizHandler) StartRun(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(h.service.StartRun())
}

// GetRun godoc
// @Summary Get a quiz run
// @Tags quiz
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.QuizRunResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/runs/{id} [get]
func (h *QuizHandler) GetRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(run)
}

// SubmitAnswer godoc
// @Summary Answer the current question of a run
// @Description Applies the chosen option; the response carries either the next question or, after the fifth answer, the resolved program recommendation
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param request body dto.SubmitAnswerRequest true "Selected option"
// @Success 200 {object} dto.QuizRunResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz/runs/{id}/answers [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	run, err := h.service.SubmitAnswer(c.Params("id"), req.OptionIndex)
	if err != nil {
		return err
	}
	return c.JSON(run)
}

// CloseRun godoc
// @Summary Close a quiz run
// @Description Destroys the run and its score state
// @Tags quiz
// @Param id path string true "Run ID"
// @Success 204
// @Router /quiz/runs/{id} [delete]
func (h *QuizHandler) CloseRun(c *fiber.Ctx) error {
	h.service.CloseRun(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
