package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"smartats/ats-evaluator/internal/config"
	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/services"
)

type evaluateOptions struct {
	resumePath string
	jdPath     string
	jdText     string
	width      int
	asJSON     bool
}

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a resume against a job description",
		Long: `Extracts the text of a PDF resume, asks the configured model for an ATS style
assessment and prints the match percentage, missing keywords and profile summary.

The job description is read from --jd, --jd-text or standard input, in that order.`,
		Example: `  smartats evaluate --resume cv.pdf --jd job.txt
  pbpaste | smartats evaluate --resume cv.pdf --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "path to the PDF resume (required)")
	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "path to a job description text file")
	cmd.Flags().StringVar(&opts.jdText, "jd-text", "", "job description text")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "profile summary wrap width (default SUMMARY_WRAP_WIDTH)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	cfg := config.Load()
	if opts.width > 0 {
		cfg.Summary.WrapWidth = opts.width
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := config.NewLogger(cfg)
	log.SetOutput(cmd.ErrOrStderr())
	if os.Getenv("LOG_LEVEL") == "" {
		log.SetLevel(logrus.WarnLevel)
	}

	if strings.ToLower(filepath.Ext(opts.resumePath)) != ".pdf" {
		return fmt.Errorf("%w: %s", services.ErrInvalidExtension, opts.resumePath)
	}

	jobDescription, err := readJobDescription(opts, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	generator, err := services.NewGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}

	parser := services.NewPDFParserService()
	content, err := parser.ExtractFile(opts.resumePath)
	if err != nil {
		return err
	}
	if content.EmptyPages > 0 {
		log.Warnf("⚠️  %d of %d pages had no extractable text", content.EmptyPages, content.PageCount)
	}

	evaluator := services.NewEvaluatorService(nil, generator, parser, cfg.Generation.Timeout, cfg.Summary.WrapWidth, log)

	start := time.Now()
	result, err := evaluator.Evaluate(ctx, models.EvaluationRequest{
		ResumeText:     content.Text,
		JobDescription: jobDescription,
	})
	if err != nil {
		return err
	}

	resp := models.NewEvaluateResponse(result)
	resp.PageCount = content.PageCount
	resp.LatencyMs = time.Since(start).Milliseconds()

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return printJSON(out, resp)
	}
	printResult(out, resp)
	return nil
}

// readJobDescription picks --jd, then --jd-text, then piped stdin. An empty description is allowed.
func readJobDescription(opts *evaluateOptions, stdin io.Reader) (string, error) {
	switch {
	case opts.jdPath != "":
		data, err := os.ReadFile(opts.jdPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), nil
	case opts.jdText != "":
		return opts.jdText, nil
	}

	if f, ok := stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read job description from stdin: %w", err)
	}
	return string(data), nil
}
