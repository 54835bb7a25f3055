package repositories

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartats/ats-evaluator/internal/models"
)

// openTestDB connects to the database named by DB_TEST_DSN, skipping the test when it is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DB_TEST_DSN")
	if dsn == "" {
		t.Skip("DB_TEST_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Evaluation{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM evaluations")
	})

	return db
}

func TestEvaluationRepository_CreateAndFind(t *testing.T) {
	repo := NewEvaluationRepository(openTestDB(t))

	match := "78%"
	summary := "Strong Go background."
	eval := &models.Evaluation{
		ID:              uuid.New(),
		Status:          models.StatusCompleted,
		MatchPercentage: &match,
		MissingKeywords: []string{"Docker", "Kubernetes"},
		ProfileSummary:  &summary,
		ResumeChars:     1200,
		JobDescChars:    400,
		PageCount:       2,
		LatencyMs:       850,
	}
	require.NoError(t, repo.Create(eval))

	found, err := repo.FindByID(eval.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, found.Status)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, found.MissingKeywords)
	assert.Equal(t, "78%", *found.MatchPercentage)

	recent, err := repo.FindRecent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestEvaluationRepository_NotFound(t *testing.T) {
	repo := NewEvaluationRepository(openTestDB(t))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrEvaluationNotFound)
}
