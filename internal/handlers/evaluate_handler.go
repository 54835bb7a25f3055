package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/services"
)

type EvaluationHandler struct {
	evaluator    services.EvaluatorService
	uploadReader services.UploadReader
	log          *logrus.Logger
}

func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	uploadReader services.UploadReader,
	log *logrus.Logger,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator:    evaluator,
		uploadReader: uploadReader,
		log:          log,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	data, err := h.uploadReader.Read(file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidExtension):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "only PDF resumes are accepted",
			})
		case errors.Is(err, services.ErrFileTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.log.WithError(err).Error("❌ Failed to read upload")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read uploaded file",
			})
		}
	}

	jobDescription := c.FormValue("job_description")

	report, err := h.evaluator.EvaluateResume(c.UserContext(), bytes.NewReader(data), int64(len(data)), jobDescription)
	if err != nil {
		return h.writeEvaluationError(c, err)
	}

	resp := models.NewEvaluateResponse(report.Result)
	resp.PageCount = report.PageCount
	resp.LatencyMs = report.Latency.Milliseconds()
	if report.ID != nil {
		resp.ID = report.ID.String()
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *EvaluationHandler) writeEvaluationError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrGenerationFailed):
		status = fiber.StatusBadGateway
	case services.IsClientError(err):
		status = fiber.StatusUnprocessableEntity
	}

	body := models.ErrorResponse{
		Error: err.Error(),
		Kind:  services.KindName(err),
		Field: services.FieldName(err),
	}
	if raw, ok := services.RawResponse(err); ok {
		body.RawResponse = &raw
	}

	if status == fiber.StatusInternalServerError {
		h.log.WithError(err).Error("❌ Unexpected evaluation error")
		body.Error = fmt.Sprintf("evaluation failed: %v", err)
	}

	return c.Status(status).JSON(body)
}
