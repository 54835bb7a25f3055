package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/repositories"
)

type HistoryHandler struct {
	evalRepo repositories.EvaluationRepository
	log      *logrus.Logger
}

func NewHistoryHandler(evalRepo repositories.EvaluationRepository, log *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{
		evalRepo: evalRepo,
		log:      log,
	}
}

// HandleGetEvaluation handles GET /evaluations/:id
func (h *HistoryHandler) HandleGetEvaluation(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation not found",
			})
		}
		h.log.WithError(err).Error("❌ Failed to load evaluation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation",
		})
	}

	return c.JSON(evaluation)
}

// HandleListEvaluations handles GET /evaluations?limit=N
func (h *HistoryHandler) HandleListEvaluations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	evaluations, err := h.evalRepo.FindRecent(limit)
	if err != nil {
		h.log.WithError(err).Error("❌ Failed to list evaluations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list evaluations",
		})
	}

	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}

	return c.JSON(models.HistoryResponse{
		Evaluations: evaluations,
		Count:       len(evaluations),
	})
}
