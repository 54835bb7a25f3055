package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartats/ats-evaluator/internal/models"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

const maxRecentLimit = 100

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByID(id uuid.UUID) (*models.Evaluation, error)
	FindRecent(limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// FindRecent returns the newest evaluations first. limit is clamped to [1, 100].
func (r *evaluationRepository) FindRecent(limit int) ([]models.Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var evals []models.Evaluation
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find evaluations: %w", err)
	}

	return evals, nil
}
