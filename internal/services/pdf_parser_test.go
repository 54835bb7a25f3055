package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal uncompressed PDF with one page per entry; an empty entry yields an empty content stream.
func buildPDF(pages []string) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1: catalog, 2: pages, 3: font, then (page, content) pairs
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+i*2)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, text := range pages {
		contentRef := 5 + i*2
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentRef))

		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func TestCollectPages_EmptyPageContributesNothing(t *testing.T) {
	pages := map[int]string{1: "Alice Doe\n", 2: "", 3: "Go, PostgreSQL\n"}

	text, empty := collectPages(3, func(i int) (string, error) {
		return pages[i], nil
	})

	assert.Equal(t, "Alice Doe\nGo, PostgreSQL\n", text)
	assert.Equal(t, 1, empty)
}

func TestCollectPages_FailedPageIsSkipped(t *testing.T) {
	text, empty := collectPages(2, func(i int) (string, error) {
		if i == 1 {
			return "garbage", errors.New("bad font")
		}
		return "page two", nil
	})

	assert.Equal(t, "page two", text)
	assert.Equal(t, 1, empty)
}

func TestCollectPages_NoPages(t *testing.T) {
	text, empty := collectPages(0, func(int) (string, error) {
		t.Fatal("should not be called")
		return "", nil
	})

	assert.Equal(t, "", text)
	assert.Equal(t, 0, empty)
}

func TestExtractText_ThreePagesWithBlankMiddle(t *testing.T) {
	data := buildPDF([]string{"Hello", "", "World"})
	parser := NewPDFParserService()

	content, err := parser.ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 3, content.PageCount)
	assert.Equal(t, 1, content.EmptyPages)
	assert.Contains(t, content.Text, "Hello")
	assert.Contains(t, content.Text, "World")
	assert.Less(t, bytes.Index([]byte(content.Text), []byte("Hello")), bytes.Index([]byte(content.Text), []byte("World")))
}

func TestExtractText_NotAPDF(t *testing.T) {
	data := []byte("definitely not a pdf")
	parser := NewPDFParserService()

	content, err := parser.ExtractText(bytes.NewReader(data), int64(len(data)))

	assert.Nil(t, content)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF([]string{"Resume"}), 0o600))

	content, err := NewPDFParserService().ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, content.PageCount)
	assert.Contains(t, content.Text, "Resume")
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := NewPDFParserService().ExtractFile(filepath.Join(t.TempDir(), "nope.pdf"))

	assert.ErrorIs(t, err, ErrExtractionFailed)
}
