package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucquestion "jobboard/internal/usecase/question"
)

type QuestionHandler struct {
	uc ucquestion.QuestionUsecase
}

func NewQuestionHandler(uc ucquestion.QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{uc: uc}
}

type questionItem struct {
	Prompt   string   `json:"prompt"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	MinValue *float64 `json:"min_value"`
	MaxValue *float64 `json:"max_value"`
}

type replaceQuestionsRequest struct {
	Questions []questionItem `json:"questions"`
}

func (h *QuestionHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/questions", h.ListByJob)
}

func (h *QuestionHandler) RegisterProviderJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/:id/questions", h.ReplaceForJob)
}

func (h *QuestionHandler) RegisterProviderApplicationRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/answers", h.AnswersForApplication)
}

func (h *QuestionHandler) ListByJob(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	questions, err := h.uc.ListByJob(c.Context(), jobID)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQuestionListResponse(questions))
}

func (h *QuestionHandler) ReplaceForJob(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req replaceQuestionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := make([]ucquestion.QuestionInput, 0, len(req.Questions))
	for _, q := range req.Questions {
		in = append(in, ucquestion.QuestionInput{
			Prompt:   q.Prompt,
			Kind:     q.Kind,
			Required: q.Required,
			MinValue: q.MinValue,
			MaxValue: q.MaxValue,
		})
	}

	questions, err := h.uc.ReplaceForJob(c.Context(), providerID, jobID, in)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQuestionListResponse(questions))
}

func (h *QuestionHandler) AnswersForApplication(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	applicationID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	answers, err := h.uc.AnswersForApplication(c.Context(), providerID, applicationID)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnswerListResponse(answers))
}

func mapQuestionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucquestion.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucquestion.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucquestion.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucquestion.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
