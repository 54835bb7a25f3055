package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/services"
)

func init() {
	color.NoColor = true
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, models.EvaluateResponse{
		JDMatch:             "78%",
		MissingKeywords:     []string{"Docker", "Kubernetes"},
		MissingKeywordsText: "Docker, Kubernetes",
		ProfileSummary:      "line one\nline two",
		PageCount:           2,
		LatencyMs:           1234,
	})

	out := buf.String()
	assert.Contains(t, out, "JD Match Percentage\n78%\n")
	assert.Contains(t, out, "Missing Keywords\nDocker, Kubernetes\n")
	assert.Contains(t, out, "Profile Summary\nline one\nline two\n")
	assert.Contains(t, out, "2 page(s), 1234ms")
}

func TestPrintResult_NoKeywords(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, models.EvaluateResponse{JDMatch: "100%"})

	assert.Contains(t, buf.String(), "Missing Keywords\n(none)\n")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, models.EvaluateResponse{JDMatch: "50%", MissingKeywords: []string{}}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "50%", decoded["jd_match"])
	assert.NotContains(t, decoded, "id")
}

func TestPrintError_ShowsRawResponse(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &services.EvaluationError{Kind: services.ErrMalformedJSON, Raw: "not json\n"})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ malformed_json: malformed json\n"))
	assert.Contains(t, out, "Raw model response:\nnot json\n")
}

func TestPrintError_Generic(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, os.ErrNotExist)

	assert.Equal(t, "✗ error: file does not exist\n", buf.String())
}

func TestReadJobDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	jd, err := readJobDescription(&evaluateOptions{jdPath: path}, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from file", jd)

	jd, err = readJobDescription(&evaluateOptions{jdText: "from flag"}, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from flag", jd)

	jd, err = readJobDescription(&evaluateOptions{}, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", jd)

	_, err = readJobDescription(&evaluateOptions{jdPath: filepath.Join(t.TempDir(), "missing.txt")}, nil)
	assert.Error(t, err)
}

func TestEvaluateCmd_RejectsNonPDF(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cmd := newEvaluateCmd()
	cmd.SetArgs([]string{"--resume", "cv.docx", "--jd-text", "Go"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, services.ErrInvalidExtension)
}

func TestEvaluateCmd_RequiresResume(t *testing.T) {
	cmd := newEvaluateCmd()
	cmd.SetArgs([]string{"--jd-text", "Go"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
