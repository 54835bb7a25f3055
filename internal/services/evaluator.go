package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/repositories"
)

type EvaluatorService interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.EvaluationResult, error)
	EvaluateResume(ctx context.Context, r io.ReaderAt, size int64, jobDescription string) (*EvaluationReport, error)
}

// EvaluationReport carries the result plus diagnostics. Diagnostics are filled in even when the evaluation fails.
type EvaluationReport struct {
	ID           *uuid.UUID
	Result       *models.EvaluationResult
	PageCount    int
	EmptyPages   int
	ResumeChars  int
	JobDescChars int
	Latency      time.Duration
}

type evaluatorService struct {
	evalRepo      repositories.EvaluationRepository
	generator     Generator
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	wrapWidth     int
	log           *logrus.Logger
}

// NewEvaluatorService wires the pipeline. evalRepo may be nil when history is disabled.
func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	generator Generator,
	pdfParser PDFParserService,
	timeout time.Duration,
	wrapWidth int,
	log *logrus.Logger,
) EvaluatorService {
	return &evaluatorService{
		evalRepo:      evalRepo,
		generator:     generator,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		wrapWidth:     wrapWidth,
		log:           log,
	}
}

func (e *evaluatorService) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.EvaluationResult, error) {
	prompt := e.promptBuilder.BuildATSPrompt(req.ResumeText, req.JobDescription)
	entry := e.log.WithFields(logrus.Fields{
		"provider":     e.generator.Name(),
		"prompt_chars": len(prompt),
		"resume_chars": len(req.ResumeText),
		"jd_chars":     len(req.JobDescription),
	})

	if strings.TrimSpace(req.ResumeText) == "" {
		entry.Warn("⚠️  Resume text is empty, evaluating anyway")
	}

	entry.Info("🤖 Requesting evaluation")

	genCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.generator.Generate(genCtx, prompt)
	if err != nil {
		entry.WithError(err).Error("❌ Generation failed")
		return nil, generationError(err)
	}

	result, err := Normalize(raw, e.wrapWidth)
	if err != nil {
		entry.WithFields(logrus.Fields{
			"kind":           KindName(err),
			"field":          FieldName(err),
			"response_chars": len(raw),
		}).Warn("⚠️  Model response rejected")
		return nil, err
	}

	entry.WithField("jd_match", result.MatchPercentage).Info("✅ Evaluation completed")

	return result, nil
}

func (e *evaluatorService) EvaluateResume(ctx context.Context, r io.ReaderAt, size int64, jobDescription string) (*EvaluationReport, error) {
	report := &EvaluationReport{JobDescChars: len(jobDescription)}

	e.log.WithField("bytes", size).Info("📄 Parsing resume...")
	content, err := e.pdfParser.ExtractText(r, size)
	if err != nil {
		e.log.WithError(err).Error("❌ Failed to parse resume")
		e.record(report, err)
		return report, err
	}

	report.PageCount = content.PageCount
	report.EmptyPages = content.EmptyPages
	report.ResumeChars = len(content.Text)

	start := time.Now()
	result, err := e.Evaluate(ctx, models.EvaluationRequest{
		ResumeText:     content.Text,
		JobDescription: jobDescription,
	})
	report.Latency = time.Since(start)
	report.Result = result

	e.record(report, err)

	return report, err
}

// record writes a history row when history is enabled. Failures are logged, never returned.
func (e *evaluatorService) record(report *EvaluationReport, evalErr error) {
	if e.evalRepo == nil {
		return
	}

	row := &models.Evaluation{
		ID:           uuid.New(),
		Status:       models.StatusCompleted,
		ResumeChars:  report.ResumeChars,
		JobDescChars: report.JobDescChars,
		PageCount:    report.PageCount,
		LatencyMs:    report.Latency.Milliseconds(),
	}

	if evalErr != nil {
		kind := KindName(evalErr)
		msg := evalErr.Error()
		row.Status = models.StatusFailed
		row.ErrorKind = &kind
		row.ErrorMessage = &msg
	} else if report.Result != nil {
		row.MatchPercentage = &report.Result.MatchPercentage
		row.MissingKeywords = report.Result.MissingKeywords
		row.ProfileSummary = &report.Result.ProfileSummary
	}

	if err := e.evalRepo.Create(row); err != nil {
		e.log.WithError(err).Warn("⚠️  Failed to save evaluation history")
		return
	}

	report.ID = &row.ID
}

// IsClientError reports whether err stems from the submitted input or the model output rather than the backend.
func IsClientError(err error) bool {
	return errors.Is(err, ErrExtractionFailed) ||
		errors.Is(err, ErrMalformedJSON) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidField)
}

func (r *EvaluationReport) String() string {
	return fmt.Sprintf("pages=%d empty=%d resume_chars=%d jd_chars=%d latency=%s",
		r.PageCount, r.EmptyPages, r.ResumeChars, r.JobDescChars, r.Latency.Round(time.Millisecond))
}
